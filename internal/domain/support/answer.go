package support

// FallbackAnswer is returned verbatim when no knowledge chunks match the
// question. It must never be replaced by provider-generated prose.
const FallbackAnswer = "I couldn't find an answer to that in our help articles. " +
	"Please contact our support team at support@lexora.shop and they'll be happy to help."

// Chunk is one retrieved knowledge-base chunk used as grounding context.
type Chunk struct {
	id       string
	title    string
	content  string
	category string
	score    float64
}

// NewChunk creates a knowledge chunk.
func NewChunk(id, title, content, category string, score float64) Chunk {
	return Chunk{id: id, title: title, content: content, category: category, score: score}
}

// ID returns the chunk identifier.
func (c Chunk) ID() string { return c.id }

// Title returns the source document title.
func (c Chunk) Title() string { return c.title }

// Content returns the chunk text.
func (c Chunk) Content() string { return c.content }

// Category returns the knowledge category of the source document.
func (c Chunk) Category() string { return c.category }

// Score returns the match score in [0,1].
func (c Chunk) Score() float64 { return c.score }

// Answer is a generated support answer together with the ordered source
// chunks it was grounded on, so callers can render citations.
type Answer struct {
	text    string
	sources []Chunk
}

// NewAnswer creates an answer.
func NewAnswer(text string, sources []Chunk) Answer {
	return Answer{text: text, sources: sources}
}

// Fallback returns the canned no-results answer.
func Fallback() Answer {
	return Answer{text: FallbackAnswer}
}

// Text returns the answer text.
func (a Answer) Text() string { return a.text }

// Sources returns the grounding chunks in retrieval order.
func (a Answer) Sources() []Chunk { return a.sources }

// IsFallback reports whether this is the canned no-results answer.
func (a Answer) IsFallback() bool {
	return a.text == FallbackAnswer && len(a.sources) == 0
}
