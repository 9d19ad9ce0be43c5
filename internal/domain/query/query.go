package query

import (
	"fmt"
	"strings"
)

// MaxTextLength is the maximum allowed query text length.
const MaxTextLength = 4096

// Query is an immutable user query: free-form text, an optional image, or both.
type Query struct {
	text  string
	image []byte
}

// New validates and creates a Query. Text is trimmed; an empty query
// (no text, no image) is allowed and classifies as clarification downstream.
func New(text string, image []byte) (Query, error) {
	text = strings.TrimSpace(text)
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("query text too long (max %d chars)", MaxTextLength)
	}
	return Query{text: text, image: image}, nil
}

// Text returns the trimmed query text.
func (q Query) Text() string { return q.text }

// Image returns the raw image payload, nil when absent.
func (q Query) Image() []byte { return q.image }

// HasText reports whether the query carries free text.
func (q Query) HasText() bool { return q.text != "" }

// HasImage reports whether the query carries an image payload.
func (q Query) HasImage() bool { return len(q.image) > 0 }
