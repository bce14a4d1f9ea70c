package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig  `yaml:"server"`
	RAG      RAGConfig     `yaml:"rag"`
	EmbedLLM LLMConfig     `yaml:"embed_llm"`
	ChatLLM  LLMConfig     `yaml:"chat_llm"`
	Line     LineConfig    `yaml:"line"`
	Persona  PersonaConfig `yaml:"persona"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type RAGConfig struct {
	SourcePath   string `yaml:"source_path"`
	ChromaDir    string `yaml:"chroma_dir"`
	Collection   string `yaml:"collection"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	TopK         int    `yaml:"top_k"`
	HistoryFile  string `yaml:"history_file"`
	MaxTurns     int    `yaml:"max_turns"`
}

type LLMConfig struct {
	Provider    string `yaml:"provider"` // ollama or openai
	BaseURL     string `yaml:"base_url"`
	Key         string `yaml:"key"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

type LineConfig struct {
	ChannelSecret      string `yaml:"channel_secret"`
	ChannelAccessToken string `yaml:"channel_access_token"`
	ReplyEndpoint      string `yaml:"reply_endpoint"`
}

// PersonaConfig controls the fixed instruction block of the prompt.
// Empty fields fall back to the prompt package defaults.
type PersonaConfig struct {
	Role  string   `yaml:"role"`
	Tasks []string `yaml:"tasks"`
}

// LoadConfig reads the yaml config at path and applies environment
// overrides on top. A missing file is not an error; the defaults plus
// environment are enough to run.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.RAG.SourcePath, "RAG_PDF_PATH")
	setString(&cfg.RAG.ChromaDir, "CHROMA_DIR")
	setString(&cfg.RAG.HistoryFile, "HISTORY_FILE")
	setString(&cfg.EmbedLLM.Model, "EMBED_MODEL_NAME")
	setString(&cfg.ChatLLM.Model, "OLLAMA_MODEL")
	setString(&cfg.EmbedLLM.BaseURL, "OLLAMA_BASE_URL")
	setString(&cfg.ChatLLM.BaseURL, "OLLAMA_BASE_URL")
	setString(&cfg.Line.ChannelSecret, "LINE_CHANNEL_SECRET")
	setString(&cfg.Line.ChannelAccessToken, "LINE_CHANNEL_ACCESS_TOKEN")
	setInt(&cfg.RAG.TopK, "RETRIEVAL_K")
	setInt(&cfg.RAG.MaxTurns, "MAX_TURNS")
	setInt(&cfg.Server.Port, "PORT")
}

func applyDefaults(cfg *Config) {
	if cfg.RAG.SourcePath == "" {
		cfg.RAG.SourcePath = "solarcell-basic-knowledge-SolarHub.pdf"
	}
	if cfg.RAG.ChromaDir == "" {
		cfg.RAG.ChromaDir = "./chroma_db"
	}
	if cfg.RAG.Collection == "" {
		cfg.RAG.Collection = "knowledge_base"
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = 5
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = 2
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 3
	}
	if cfg.RAG.HistoryFile == "" {
		cfg.RAG.HistoryFile = "chat_history.json"
	}
	if cfg.RAG.MaxTurns == 0 {
		cfg.RAG.MaxTurns = 5
	}
	if cfg.EmbedLLM.Model == "" {
		cfg.EmbedLLM.Model = "paraphrase-multilingual-MiniLM-L12-v2"
	}
	if cfg.ChatLLM.Model == "" {
		cfg.ChatLLM.Model = "gemma3:latest"
	}
	if cfg.ChatLLM.TimeoutSecs == 0 {
		cfg.ChatLLM.TimeoutSecs = 60
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
