package constants

// BatchStatus is the canonical status for rows in import_batch.
type BatchStatus string

// Stable values (store these exact strings in DB).
const (
	BatchStatusRunning   BatchStatus = "RUNNING"   // extraction/parsing in progress
	BatchStatusParsed    BatchStatus = "PARSED"    // questions produced, awaiting review
	BatchStatusConfirmed BatchStatus = "CONFIRMED" // reviewer accepted, questions persisted
	BatchStatusFailed    BatchStatus = "FAILED"    // terminal failure
)
