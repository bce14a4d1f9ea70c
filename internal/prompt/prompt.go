// Package prompt assembles the single text prompt sent to the chat model.
// Building is pure: identical inputs render identical prompts.
package prompt

import (
	"fmt"
	"strings"

	"ragbot/internal/models"
)

// DefaultRole and DefaultTasks reproduce the bot's stock persona; both can
// be replaced through configuration.
const DefaultRole = "You are an engineer."

var DefaultTasks = []string{
	"Use a warm and friendly tone",
	"Answer in Thai language",
	"Summarize the information clearly and concisely",
	"Make it easy to understand, even for beginners",
	"Include relevant emojis such as 🔋☀️🔌 when appropriate",
}

const promptTemplate = `Previous Conversation:
%s

Context:
%s

Role: %s
Task:
%s

Question: %s
Answer:`

// Builder renders prompts under a fixed persona.
type Builder struct {
	role  string
	tasks []string
}

func NewBuilder(role string, tasks []string) *Builder {
	if role == "" {
		role = DefaultRole
	}
	if len(tasks) == 0 {
		tasks = DefaultTasks
	}
	return &Builder{role: role, tasks: tasks}
}

// Build renders, in order: the history turns as alternating User/Bot lines,
// the retrieved context block, the persona instructions, the question, and
// a trailing Answer cue for the model to complete from.
func (b *Builder) Build(history []models.Turn, context, question string) string {
	historyLines := make([]string, len(history))
	for i, turn := range history {
		historyLines[i] = fmt.Sprintf("User: %s\nBot: %s", turn.User, turn.Bot)
	}

	taskLines := make([]string, len(b.tasks))
	for i, task := range b.tasks {
		taskLines[i] = "- " + task
	}

	return fmt.Sprintf(promptTemplate,
		strings.Join(historyLines, "\n"),
		context,
		b.role,
		strings.Join(taskLines, "\n"),
		question,
	)
}
