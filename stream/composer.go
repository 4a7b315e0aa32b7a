// Package stream composes media results and generation chunks into one
// tagged byte stream.
//
// The wire grammar is plain UTF-8 text, demultiplexed by the client on
// sentinel tags:
//
//	__MEDIA_START__\n<json>\n__MEDIA_END__\n\n     at most once, always first
//	__THOUGHT_START__<text>__THOUGHT_END__          zero or more
//	<raw answer text>                               zero or more, unwrapped
//	\n\n__JSON_START__\n<json>\n__JSON_END__        zero or more
//	\n\n[SYSTEM ERROR: Stream interrupted - <msg>]  zero or one, terminal
package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/isc-ai/engine/gemini"
	"github.com/isc-ai/engine/media"
)

const (
	mediaStartTag   = "__MEDIA_START__\n"
	mediaEndTag     = "\n__MEDIA_END__\n\n"
	thoughtStartTag = "__THOUGHT_START__"
	thoughtEndTag   = "__THOUGHT_END__"
	jsonStartTag    = "\n\n__JSON_START__\n"
	jsonEndTag      = "\n__JSON_END__"
	errorTailFormat = "\n\n[SYSTEM ERROR: Stream interrupted - %s]"
)

// Flusher is implemented by writers that can push buffered bytes to the
// client immediately (http.ResponseWriter does).
type Flusher interface {
	Flush()
}

// Composer turns one media result set plus one live chunk stream into the
// tagged response stream.
type Composer struct {
	Logger *log.Logger
}

// NewComposer returns a Composer logging to the default logger.
func NewComposer() *Composer {
	return &Composer{Logger: log.Default()}
}

// Stream is a composed response ready to be written out exactly once.
type Stream struct {
	media  media.ResultSet
	first  *gemini.Chunk
	chunks <-chan gemini.Chunk
	errs   <-chan error
	logger *log.Logger
}

// Compose blocks until the generator yields its first chunk, finishes, or
// fails. A failure before any chunk is a request-level error: nothing has
// been written yet, so the caller can still answer with an HTTP error.
// Anything after that point is reported in-band by WriteTo.
func (c *Composer) Compose(results media.ResultSet, chunks <-chan gemini.Chunk, errs <-chan error) (*Stream, error) {
	s := &Stream{media: results, chunks: chunks, errs: errs, logger: c.Logger}
	if s.logger == nil {
		s.logger = log.Default()
	}

	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				s.chunks = nil
				chunks = nil
				break
			}
			s.first = &chunk
			return s, nil

		case err, ok := <-errs:
			if ok && err != nil {
				return nil, err
			}
			if !ok {
				s.errs = nil
				errs = nil
			}
		}

		if chunks == nil && errs == nil {
			// Generator produced nothing and reported no error.
			return s, nil
		}
	}
}

// WriteTo emits the media frame (if any results), then drains the chunk
// stream frame by frame. A generator failure mid-stream becomes one terminal
// error frame; a write failure (client gone) ends the stream silently.
// Each frame is flushed as soon as it is written when w supports it.
func (s *Stream) WriteTo(w io.Writer) error {
	if !s.media.Empty() {
		payload, err := json.Marshal(s.media)
		if err != nil {
			return fmt.Errorf("failed to marshal media results: %w", err)
		}
		if err := s.emit(w, mediaStartTag+string(payload)+mediaEndTag); err != nil {
			return err
		}
	}

	if s.first != nil {
		if err := s.writeChunk(w, *s.first); err != nil {
			return err
		}
	}

	chunks, errs := s.chunks, s.errs
	for chunks != nil || errs != nil {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				chunks = nil
				continue
			}
			if err := s.writeChunk(w, chunk); err != nil {
				return err
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				s.logger.Printf("Stream processing error: %v", err)
				s.emit(w, fmt.Sprintf(errorTailFormat, err.Error()))
				return nil
			}
		}
	}

	return nil
}

func (s *Stream) writeChunk(w io.Writer, chunk gemini.Chunk) error {
	switch chunk.Kind {
	case gemini.ChunkThought:
		return s.emit(w, thoughtStartTag+chunk.Text+thoughtEndTag)

	case gemini.ChunkAnswer:
		if chunk.Text == "" {
			return nil
		}
		return s.emit(w, chunk.Text)

	case gemini.ChunkGrounding:
		payload, err := json.Marshal(map[string]any{"sources": chunk.Sources})
		if err != nil {
			return fmt.Errorf("failed to marshal grounding sources: %w", err)
		}
		return s.emit(w, jsonStartTag+string(payload)+jsonEndTag)
	}
	return nil
}

func (s *Stream) emit(w io.Writer, frame string) error {
	if _, err := io.WriteString(w, frame); err != nil {
		return fmt.Errorf("failed to write stream frame: %w", err)
	}
	if f, ok := w.(Flusher); ok {
		f.Flush()
	}
	return nil
}
