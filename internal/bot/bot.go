// Package bot orchestrates one inbound message end to end: history,
// retrieval, prompt assembly, generation, truncation, write-back.
package bot

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"ragbot/internal/models"
	"ragbot/internal/prompt"
	"ragbot/internal/rag"
)

const helpText = "Hi! Send me a question about the PDF and I'll answer using RAG.\n\n" +
	"Commands:\n" +
	"- /source : show PDF + embedding info\n" +
	"- /id : echo message id\n"

const apologyReply = "Sorry, something went wrong while answering. Please try again."

type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]models.SearchResult, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type HistoryStore interface {
	Load(userID string, maxTurns int) ([]models.Turn, error)
	Append(userID, userMessage, botResponse string) error
}

// Orchestrator holds the constructed-once collaborators for the online
// path. Concurrent invocations for different users are safe; the history
// store serialises its own writes.
type Orchestrator struct {
	retriever  Retriever
	generator  Generator
	history    HistoryStore
	prompts    *prompt.Builder
	maxTurns   int
	sourceInfo string
}

func New(retriever Retriever, generator Generator, history HistoryStore, prompts *prompt.Builder, maxTurns int, sourceInfo string) *Orchestrator {
	if maxTurns <= 0 {
		maxTurns = 5
	}
	return &Orchestrator{
		retriever:  retriever,
		generator:  generator,
		history:    history,
		prompts:    prompts,
		maxTurns:   maxTurns,
		sourceInfo: sourceInfo,
	}
}

// HandleMessage produces the reply for one inbound message. Commands and
// empty messages short-circuit without touching retrieval or history. Any
// per-message failure returns an apology instead of crashing the service.
func (o *Orchestrator) HandleMessage(ctx context.Context, msg models.Inbound) string {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return models.EmptyMessageReply
	}

	switch strings.ToLower(text) {
	case "/help", "help":
		return helpText
	case "/source":
		return o.sourceInfo
	case "/id":
		return "msg id: " + msg.MessageID
	}

	turns, err := o.history.Load(msg.UserID, o.maxTurns)
	if err != nil {
		log.Warn().Err(err).Str("user", msg.UserID).Msg("Failed to load history, continuing without it")
		turns = nil
	}

	results, err := o.retriever.Retrieve(ctx, text)
	if err != nil {
		log.Error().Err(err).Str("user", msg.UserID).Msg("Retrieval failed")
		return apologyReply
	}

	p := o.prompts.Build(turns, rag.ContextBlock(results), text)
	answer, err := o.generator.Generate(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("user", msg.UserID).Msg("Generation failed")
		return apologyReply
	}

	answer = Truncate(answer, models.MaxReplyChars)

	if err := o.history.Append(msg.UserID, text, answer); err != nil {
		// the reply still goes out; only the audit trail is lost
		log.Error().Err(err).Str("user", msg.UserID).Msg("Failed to append history")
	}
	return answer
}

// Truncate caps the reply at max characters (not bytes) and marks the cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + models.TruncationSuffix
}
