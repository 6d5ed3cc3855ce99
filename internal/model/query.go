package model

// SourceScore reports how relevant one retrieved source was to a query.
// RelevanceScore is 1 - cosine distance; it is not clamped and goes
// negative for distances above 1.
type SourceScore struct {
	Source         string  `json:"source"`
	RelevanceScore float64 `json:"relevance_score"`
}

type QueryResult struct {
	Question    string        `json:"question"`
	Answer      string        `json:"answer"`
	Sources     []SourceScore `json:"sources"`
	ContextUsed int           `json:"context_used"`
}

type HealthStatus struct {
	Status            string `json:"status"`
	DatabaseConnected bool   `json:"database_connected"`
	DocumentsLoaded   int64  `json:"documents_loaded"`
}

type CorpusStats struct {
	TotalDocuments int64    `json:"total_documents"`
	UniqueSources  int      `json:"unique_sources"`
	Sources        []string `json:"sources"`
}
