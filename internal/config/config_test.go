package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "solarcell-basic-knowledge-SolarHub.pdf", cfg.RAG.SourcePath)
	assert.Equal(t, "./chroma_db", cfg.RAG.ChromaDir)
	assert.Equal(t, 5, cfg.RAG.ChunkSize)
	assert.Equal(t, 2, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 3, cfg.RAG.TopK)
	assert.Equal(t, 5, cfg.RAG.MaxTurns)
	assert.Equal(t, "chat_history.json", cfg.RAG.HistoryFile)
	assert.Equal(t, "paraphrase-multilingual-MiniLM-L12-v2", cfg.EmbedLLM.Model)
	assert.Equal(t, "gemma3:latest", cfg.ChatLLM.Model)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("RAG_PDF_PATH", "/tmp/manual.pdf")
	t.Setenv("CHROMA_DIR", "/tmp/index")
	t.Setenv("EMBED_MODEL_NAME", "nomic-embed-text")
	t.Setenv("OLLAMA_MODEL", "llama3")
	t.Setenv("RETRIEVAL_K", "7")
	t.Setenv("PORT", "8080")
	t.Setenv("LINE_CHANNEL_SECRET", "secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/manual.pdf", cfg.RAG.SourcePath)
	assert.Equal(t, "/tmp/index", cfg.RAG.ChromaDir)
	assert.Equal(t, "nomic-embed-text", cfg.EmbedLLM.Model)
	assert.Equal(t, "llama3", cfg.ChatLLM.Model)
	assert.Equal(t, 7, cfg.RAG.TopK)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Line.ChannelSecret)
}

func TestLoadConfigFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
rag:
  source_path: from-file.pdf
  top_k: 9
server:
  port: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("RAG_PDF_PATH", "from-env.pdf")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// env beats the file, the file beats the defaults
	assert.Equal(t, "from-env.pdf", cfg.RAG.SourcePath)
	assert.Equal(t, 9, cfg.RAG.TopK)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.RAG.ChunkSize)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rag: ["), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigIgnoresBadIntEnv(t *testing.T) {
	t.Setenv("RETRIEVAL_K", "not-a-number")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RAG.TopK)
}
