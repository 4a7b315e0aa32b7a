package gemini

// ChunkKind classifies a normalized stream chunk.
type ChunkKind int

const (
	// ChunkAnswer carries answer text, written to the client as-is.
	ChunkAnswer ChunkKind = iota
	// ChunkThought carries model reasoning text.
	ChunkThought
	// ChunkGrounding carries citation sources for the preceding text.
	ChunkGrounding
)

// Chunk is the single normalized shape the stream composer consumes. The
// provider-specific response shapes are folded into it once, here in the
// gemini package.
type Chunk struct {
	Kind    ChunkKind
	Text    string
	Sources []Source
}

// Source is one grounding citation.
type Source struct {
	Web *WebSource `json:"web,omitempty"`
}

// WebSource points at the web page a grounded statement came from.
type WebSource struct {
	URI    string `json:"uri"`
	Title  string `json:"title,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// Turn is one prior conversation turn, taken verbatim from the caller.
type Turn struct {
	Role  string     `json:"role"`
	Parts []TurnPart `json:"parts"`
}

// TurnPart is one part of a prior turn.
type TurnPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData is base64-encoded inline media inside a history turn.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// ImagePayload is an uploaded image for the current turn.
type ImagePayload struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}
