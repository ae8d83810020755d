package docsystem

import (
	"io"
)

// CandidateFile is a file offered for upload, before validation.
// Content is read once during submission; Name, MIMEType and Size are
// what the validator inspects.
type CandidateFile struct {
	Name     string
	MIMEType string
	Size     int64
	Content  io.Reader
}

// UploadState is the lifecycle state of one file in an upload batch.
type UploadState string

const (
	UploadPending   UploadState = "pending"
	UploadUploading UploadState = "uploading"
	UploadSucceeded UploadState = "succeeded"
	UploadFailed    UploadState = "failed"
)

// UploadTask tracks one file mid-flight in an upload batch. Ephemeral,
// client-only: discarded when the batch is torn down, never persisted.
type UploadTask struct {
	File            CandidateFile
	Index           int // position in the batch
	ProgressPercent int // 0-100, non-decreasing until terminal
	State           UploadState
	Err             error // set only when State == UploadFailed
}

// UploadMetadata is the shared metadata applied to every file of one
// upload batch, mirroring the multipart form fields of the upload
// endpoint.
type UploadMetadata struct {
	Description string
	Category    string
	UploadDate  string // ISO date
	IsPublic    bool
	Language    string // optional
	FolderID    *string
}

// UploadOutcome aggregates a settled batch: documents created by the
// server plus per-file failures. Partial failure is an expected result,
// not an error.
type UploadOutcome struct {
	Succeeded []Document
	Failed    []UploadFailure
}

// UploadFailure records one file that did not make it.
type UploadFailure struct {
	FileName string
	Index    int
	Err      error
}
