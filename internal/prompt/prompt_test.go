package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragbot/internal/models"
)

func TestBuildOrdering(t *testing.T) {
	b := NewBuilder("", nil)
	history := []models.Turn{{User: "Q1", Bot: "A1"}}

	p := b.Build(history, "CTX", "Q2")

	wantInOrder := []string{"User: Q1", "Bot: A1", "CTX", "Q2"}
	last := -1
	for _, want := range wantInOrder {
		idx := strings.Index(p, want)
		require.GreaterOrEqual(t, idx, 0, "prompt must contain %q", want)
		assert.Greater(t, idx, last, "%q must come after the previous marker", want)
		last = idx
	}

	assert.True(t, strings.HasSuffix(p, "Answer:"), "prompt must end with the answer cue")
}

func TestBuildDefaultPersona(t *testing.T) {
	b := NewBuilder("", nil)

	p := b.Build(nil, "CTX", "Q")

	assert.Contains(t, p, "Role: You are an engineer.")
	assert.Contains(t, p, "- Answer in Thai language")
	assert.Contains(t, p, "- Use a warm and friendly tone")
}

func TestBuildCustomPersona(t *testing.T) {
	b := NewBuilder("You are a botanist.", []string{"Answer in English"})

	p := b.Build(nil, "CTX", "Q")

	assert.Contains(t, p, "Role: You are a botanist.")
	assert.Contains(t, p, "- Answer in English")
	assert.NotContains(t, p, "Thai")
}

func TestBuildDeterministic(t *testing.T) {
	b := NewBuilder("", nil)
	history := []models.Turn{{User: "Q1", Bot: "A1"}, {User: "Q2", Bot: "A2"}}

	first := b.Build(history, "CTX", "Q3")
	second := b.Build(history, "CTX", "Q3")
	assert.Equal(t, first, second)
}

func TestBuildMultiTurnHistoryChronological(t *testing.T) {
	b := NewBuilder("", nil)
	history := []models.Turn{
		{User: "oldest", Bot: "r1"},
		{User: "newest", Bot: "r2"},
	}

	p := b.Build(history, "CTX", "Q")

	assert.Less(t, strings.Index(p, "User: oldest"), strings.Index(p, "User: newest"))
}

func TestBuildNoContextPlaceholderPassesThrough(t *testing.T) {
	b := NewBuilder("", nil)

	p := b.Build(nil, models.NoContextFound, "Q")
	assert.Contains(t, p, "[No document found]")
}
