package model

// ChunkMeta is the structured metadata persisted alongside each chunk.
type ChunkMeta struct {
	ChunkIndex int `json:"chunk_index"`
}

// Chunk is one retrievable unit of source text with its embedding.
type Chunk struct {
	ID        int64
	Content   string
	Source    string
	Meta      ChunkMeta
	Embedding []float32
}

// SearchHit is one nearest-neighbor search result, closest first.
type SearchHit struct {
	Content  string
	Source   string
	Distance float64
}
