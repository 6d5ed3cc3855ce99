package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Database      DatabaseConfig   `json:"database"`
	AI            AIConfig         `json:"ai"`
	RAG           RAGConfig        `json:"rag"`
	Company       CompanyConfig    `json:"company"`
	CORSAllowlist []string         `json:"cors_allowlist"`
	// Cron spec for the periodic corpus stats log line. Empty disables it.
	StatsJobSpec string `json:"stats_job_spec"`
	// When false, a failed startup ingestion is logged and the server
	// comes up over whatever the store already holds.
	FailOnIngestError *bool `json:"fail_on_ingest_error"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type AIConfig struct {
	Provider   string      `json:"provider"`
	Model      string      `json:"model"`
	EmbedModel string      `json:"embed_model"`
	EmbedDim   int         `json:"embed_dim"`
	Data       interface{} `json:"data"`
}

type RAGConfig struct {
	ChunkSize    int `json:"chunk_size"`
	ChunkOverlap int `json:"chunk_overlap"`
	TopK         int `json:"top_k"`
}

type CompanyConfig struct {
	Name     string   `json:"name"`
	Website  string   `json:"website"`
	DocsDir  string   `json:"docs_dir"`
	PDFFiles []string `json:"pdf_files"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Database.DSN == "" && (cfg.Database.Host == "" || cfg.Database.DBName == "") {
		return nil, fmt.Errorf("database.dsn or database.host/dbname is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "openai"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4-turbo-preview"
	}
	if cfg.AI.EmbedModel == "" {
		cfg.AI.EmbedModel = "text-embedding-3-small"
	}
	if cfg.AI.EmbedDim == 0 {
		cfg.AI.EmbedDim = 1536
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = 1000
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = 200
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 5
	}
	if cfg.Company.Name == "" {
		cfg.Company.Name = "Spapperi N.T. S.r.l."
	}
	if cfg.Company.Website == "" {
		cfg.Company.Website = "https://www.spapperi.com/it/"
	}
	if cfg.Company.DocsDir == "" {
		cfg.Company.DocsDir = "/data"
	}
	if cfg.Company.PDFFiles == nil {
		cfg.Company.PDFFiles = []string{
			"Piantatalee-TP.pdf",
			"Rincalzatore-SM.pdf",
			"Seminatrice-pneumatica-SMP.pdf",
			"Stendi-film-SF.pdf",
		}
	}
	return &cfg, nil
}

// FailOnIngest reports whether a startup ingestion failure should abort
// the process. Defaults to true when the field is absent.
func (c *Config) FailOnIngest() bool {
	if c.FailOnIngestError == nil {
		return true
	}
	return *c.FailOnIngestError
}
