package models

// Chunk is one overlapping window of source lines, the unit of retrieval.
type Chunk struct {
	Content  string
	Source   string
	Sequence int
}

// SearchResult is one retrieved chunk with its similarity to the query.
type SearchResult struct {
	ID         string
	Content    string
	Metadata   map[string]string
	Similarity float32
}

// Turn is one user/bot exchange in a conversation.
type Turn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// Inbound is one text message delivered by the transport.
type Inbound struct {
	UserID    string
	MessageID string
	Text      string
}
