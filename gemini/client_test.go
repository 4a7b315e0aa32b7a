package gemini

import (
	"encoding/base64"
	"io"
	"log"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/isc-ai/engine/config"
	"github.com/isc-ai/engine/modes"
)

func testClient() *Client {
	c := NewClient(&config.Config{})
	c.logger = log.New(io.Discard, "", 0)
	return c
}

func TestBuildContentsPrefixesQuery(t *testing.T) {
	c := testClient()
	contents, err := c.buildContents(nil, "explain recursion", nil)
	if err != nil {
		t.Fatalf("buildContents failed: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected one content, got %d", len(contents))
	}
	if contents[0].Role != genai.RoleUser {
		t.Errorf("unexpected role %q", contents[0].Role)
	}
	if got := contents[0].Parts[0].Text; got != "User Query: explain recursion" {
		t.Errorf("unexpected text part: %q", got)
	}
}

func TestBuildContentsPlaceholderForImagesOnly(t *testing.T) {
	c := testClient()
	img := ImagePayload{
		Base64:   base64.StdEncoding.EncodeToString([]byte("pixels")),
		MimeType: "image/png",
	}
	contents, err := c.buildContents(nil, "", []ImagePayload{img})
	if err != nil {
		t.Fatalf("buildContents failed: %v", err)
	}

	parts := contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected text + image parts, got %d", len(parts))
	}
	if !strings.Contains(parts[0].Text, "Analyze the provided image") {
		t.Errorf("expected placeholder prompt, got %q", parts[0].Text)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MIMEType != "image/png" {
		t.Fatalf("unexpected inline part: %+v", parts[1])
	}
	if string(parts[1].InlineData.Data) != "pixels" {
		t.Errorf("image payload not decoded: %q", parts[1].InlineData.Data)
	}
}

func TestBuildContentsSkipsBadImages(t *testing.T) {
	c := testClient()
	images := []ImagePayload{
		{Base64: "", MimeType: "image/png"},
		{Base64: "aGk=", MimeType: ""},
		{Base64: "%%%not-base64%%%", MimeType: "image/png"},
		{Base64: base64.StdEncoding.EncodeToString([]byte("ok")), MimeType: "image/jpeg"},
	}
	contents, err := c.buildContents(nil, "q", images)
	if err != nil {
		t.Fatalf("buildContents failed: %v", err)
	}

	parts := contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected only the usable image to survive, got %d parts", len(parts))
	}
	if parts[1].InlineData.MIMEType != "image/jpeg" {
		t.Errorf("wrong image survived: %+v", parts[1].InlineData)
	}
}

func TestBuildContentsCarriesHistory(t *testing.T) {
	c := testClient()
	history := []Turn{
		{Role: genai.RoleUser, Parts: []TurnPart{{Text: "first question"}}},
		{Role: "model", Parts: []TurnPart{{Text: "first answer"}}},
		{Parts: []TurnPart{}}, // empty turns are dropped
	}
	contents, err := c.buildContents(history, "followup", nil)
	if err != nil {
		t.Fatalf("buildContents failed: %v", err)
	}

	if len(contents) != 3 {
		t.Fatalf("expected 2 history turns + current, got %d", len(contents))
	}
	if contents[0].Parts[0].Text != "first question" {
		t.Errorf("history out of order: %+v", contents[0])
	}
	if contents[1].Role != "model" {
		t.Errorf("history role lost: %q", contents[1].Role)
	}
	if contents[2].Parts[0].Text != "User Query: followup" {
		t.Errorf("current turn must come last: %+v", contents[2])
	}
}

func TestGenerationConfigFromMode(t *testing.T) {
	mode := modes.Resolve(string(modes.Default))
	cfg := generationConfig(mode)

	if cfg.Temperature == nil || *cfg.Temperature != mode.Temperature {
		t.Errorf("temperature not carried over: %v", cfg.Temperature)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != mode.SystemInstruction {
		t.Error("system instruction not carried over")
	}
	if cfg.ThinkingConfig == nil || !cfg.ThinkingConfig.IncludeThoughts {
		t.Error("thought summaries should be requested")
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0].GoogleSearch == nil {
		t.Errorf("search grounding tool missing: %+v", cfg.Tools)
	}
}

func TestNormalizeResponseSplitsThoughtAndAnswer(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "let me think", Thought: true},
				{Text: "the answer"},
				{Text: ""},
			}},
		}},
	}

	chunks := normalizeResponse(resp)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Kind != ChunkThought || chunks[0].Text != "let me think" {
		t.Errorf("unexpected thought chunk: %+v", chunks[0])
	}
	if chunks[1].Kind != ChunkAnswer || chunks[1].Text != "the answer" {
		t.Errorf("unexpected answer chunk: %+v", chunks[1])
	}
}

func TestNormalizeResponseGrounding(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "cited answer"}}},
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://docs.oracle.com", Title: "Java Docs", Domain: "docs.oracle.com"}},
					nil,
				},
			},
		}},
	}

	chunks := normalizeResponse(resp)
	if len(chunks) != 2 {
		t.Fatalf("expected answer + grounding chunks, got %d", len(chunks))
	}
	grounding := chunks[1]
	if grounding.Kind != ChunkGrounding {
		t.Fatalf("expected grounding chunk, got %+v", grounding)
	}
	if len(grounding.Sources) != 1 {
		t.Fatalf("nil grounding entries should be dropped, got %d sources", len(grounding.Sources))
	}
	if grounding.Sources[0].Web.URI != "https://docs.oracle.com" {
		t.Errorf("unexpected source: %+v", grounding.Sources[0])
	}
}

func TestNormalizeResponseEmpty(t *testing.T) {
	if chunks := normalizeResponse(nil); chunks != nil {
		t.Errorf("nil response should normalize to nothing, got %+v", chunks)
	}
	if chunks := normalizeResponse(&genai.GenerateContentResponse{}); chunks != nil {
		t.Errorf("empty response should normalize to nothing, got %+v", chunks)
	}
}
