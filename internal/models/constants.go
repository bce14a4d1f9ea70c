package models

const (
	ContextSeparator = "\n\n---\n\n"
	NoContextFound   = "[No document found]"
	EmptyLLMResponse = "[ERROR] Empty response from LLM."

	EmptyMessageReply = "(empty message)"

	// replies longer than this are cut at a character boundary
	MaxReplyChars    = 1900
	TruncationSuffix = "\n… (truncated)"
)
