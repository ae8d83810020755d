package docsystem

import (
	"fmt"

	models "heritageguard/internal/domain/models/docsystem"

	"github.com/dustin/go-humanize"
)

// TypePolicy is one row of the static upload policy table: what a MIME
// type is called, which extension it carries and how large a file of
// that type may be.
type TypePolicy struct {
	Extension   string
	DisplayName string
	MaxSize     int64 // bytes
}

// uploadPolicy maps accepted MIME types to their policy. Only document
// formats are uploadable; media files reach the platform through a
// separate ingestion pipeline.
var uploadPolicy = map[string]TypePolicy{
	"application/pdf": {
		Extension:   ".pdf",
		DisplayName: "PDF document",
		MaxSize:     50 << 20,
	},
	"application/msword": {
		Extension:   ".doc",
		DisplayName: "Word document",
		MaxSize:     25 << 20,
	},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {
		Extension:   ".docx",
		DisplayName: "Word document (OOXML)",
		MaxSize:     25 << 20,
	},
	"text/plain": {
		Extension:   ".txt",
		DisplayName: "Plain text",
		MaxSize:     5 << 20,
	},
	"application/rtf": {
		Extension:   ".rtf",
		DisplayName: "Rich text document",
		MaxSize:     10 << 20,
	},
}

// FileCheck is the outcome of validating one candidate file. Valid is
// true iff Errors is empty; a file can accumulate multiple errors.
type FileCheck struct {
	Valid  bool
	Errors []string
	Policy *TypePolicy // matched policy row, nil for unsupported types
}

// ValidateFile checks a candidate against the upload policy table.
// Pure function: no I/O, safe to call per file in a tight loop.
func ValidateFile(file models.CandidateFile) FileCheck {
	var errs []string
	var policy *TypePolicy

	if p, ok := uploadPolicy[file.MIMEType]; ok {
		policy = &p
		if file.Size > p.MaxSize {
			errs = append(errs, fmt.Sprintf(
				"%s is too large: %s exceeds the %s limit for %s files",
				file.Name,
				humanize.IBytes(uint64(file.Size)),
				humanize.IBytes(uint64(p.MaxSize)),
				p.DisplayName,
			))
		}
	} else {
		errs = append(errs, fmt.Sprintf(
			"%s has unsupported type %q: only PDF, Word, plain text and RTF files can be uploaded",
			file.Name, file.MIMEType,
		))
	}

	return FileCheck{
		Valid:  len(errs) == 0,
		Errors: errs,
		Policy: policy,
	}
}

// AcceptedTypes returns the policy table keyed by MIME type, for
// building picker filters and help text.
func AcceptedTypes() map[string]TypePolicy {
	out := make(map[string]TypePolicy, len(uploadPolicy))
	for mime, policy := range uploadPolicy {
		out[mime] = policy
	}
	return out
}
