package domain

// IngestStage names a stage of the ingestion pipeline for failure reports.
type IngestStage string

// Ingestion stages, in execution order.
const (
	StageFetch   IngestStage = "fetch"
	StageProcess IngestStage = "process"
	StageChunk   IngestStage = "chunk"
	StageEmbed   IngestStage = "embed"
	StageStore   IngestStage = "store"
)

// IngestReport summarises an ingestion run. When a run fails, FailedStage
// names the stage that failed so callers can return a structured failure
// instead of a bare error string.
type IngestReport struct {
	// Documents is the number of source documents fetched.
	Documents int `json:"documents"`

	// Chunks is the number of chunks produced.
	Chunks int `json:"chunks"`

	// Stored is the number of vector records written to the store.
	Stored int `json:"stored"`

	// EmbeddingFailures counts chunks that degraded to zero vectors.
	EmbeddingFailures int `json:"embeddingFailures,omitempty"`

	// FailedStage is set when the run aborted, naming the failing stage.
	FailedStage IngestStage `json:"failedStage,omitempty"`
}
