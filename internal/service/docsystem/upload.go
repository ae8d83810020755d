package docsystem

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"

	"github.com/google/uuid"
)

// ErrSubmitInFlight is returned when a second submit is attempted while
// the session's batch is still uploading.
var ErrSubmitInFlight = errors.New("an upload for this batch is already in progress")

// StagedBatch is the result of staging candidate files: the files that
// passed validation and a per-file rejection report for the rest.
type StagedBatch struct {
	Accepted []models.CandidateFile
	Rejected []RejectedFile
}

// RejectedFile pairs a rejected candidate with its validation errors.
type RejectedFile struct {
	File   models.CandidateFile
	Errors []string
}

// RejectionReport joins every rejection message, one line per message,
// for display as a single pre-submit summary.
func (b *StagedBatch) RejectionReport() string {
	var lines []string
	for _, rejected := range b.Rejected {
		lines = append(lines, rejected.Errors...)
	}
	return strings.Join(lines, "\n")
}

// ProgressFunc receives per-file progress updates during submission.
type ProgressFunc func(index, percent int)

// UploadSession manages the lifecycle of one batch of pending uploads:
// validation, per-file progress, concurrent submission and
// partial-failure aggregation. Sessions are ephemeral; discard the
// session when the batch UI is torn down.
type UploadSession struct {
	gateway remote.DocumentGateway
	logger  *slog.Logger

	mu         sync.Mutex
	batchID    string
	tasks      []models.UploadTask
	progress   map[int]int
	submitting bool
}

// NewUploadSession creates a session for one upload batch.
func NewUploadSession(gateway remote.DocumentGateway, logger *slog.Logger) *UploadSession {
	return &UploadSession{
		gateway:  gateway,
		logger:   logger,
		batchID:  uuid.NewString(),
		progress: make(map[int]int),
	}
}

// BatchID identifies this batch in logs and intents.
func (s *UploadSession) BatchID() string { return s.batchID }

// Stage runs the file validator over every candidate. Files failing
// validation never enter the submission batch; they come back in the
// rejection report instead.
func (s *UploadSession) Stage(files []models.CandidateFile) *StagedBatch {
	batch := &StagedBatch{}
	for _, file := range files {
		check := ValidateFile(file)
		if check.Valid {
			batch.Accepted = append(batch.Accepted, file)
		} else {
			batch.Rejected = append(batch.Rejected, RejectedFile{File: file, Errors: check.Errors})
		}
	}

	s.mu.Lock()
	s.tasks = make([]models.UploadTask, len(batch.Accepted))
	for i, file := range batch.Accepted {
		s.tasks[i] = models.UploadTask{File: file, Index: i, State: models.UploadPending}
	}
	s.progress = make(map[int]int, len(batch.Accepted))
	s.mu.Unlock()

	s.logger.Info("upload batch staged",
		"batch_id", s.batchID,
		"accepted", len(batch.Accepted),
		"rejected", len(batch.Rejected),
	)
	return batch
}

// Submit uploads every staged file concurrently and resolves only once
// all of them have settled. Partial failure is an expected outcome:
// the returned UploadOutcome lists both the created documents and the
// per-file failures, and the error return is reserved for misuse of
// the session itself. Failed files are never retried automatically; to
// retry, re-stage them in a new session.
//
// Submit panics when called before Stage or with an empty accepted
// batch: that is a caller bug, not a runtime condition.
func (s *UploadSession) Submit(ctx context.Context, siteID string, meta models.UploadMetadata, onProgress ProgressFunc) (*models.UploadOutcome, error) {
	s.mu.Lock()
	if len(s.tasks) == 0 {
		s.mu.Unlock()
		panic("docsystem: UploadSession.Submit called with an empty batch")
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.submitting = true
	count := len(s.tasks)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	// Fire-and-collect: every file uploads at once, nothing is
	// serialized and nothing short-circuits on first failure.
	results := make([]struct {
		doc *models.Document
		err error
	}, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		s.setTaskState(i, models.UploadUploading, nil)

		wg.Add(1)
		go func(index int) {
			defer wg.Done()

			task := s.task(index)
			doc, err := s.gateway.Upload(ctx, siteID, task.File, meta, func(percent int) {
				s.recordProgress(index, percent, onProgress)
			})
			results[index].doc = doc
			results[index].err = err

			if err != nil {
				s.setTaskState(index, models.UploadFailed, err)
			} else {
				s.recordProgress(index, 100, onProgress)
				s.setTaskState(index, models.UploadSucceeded, nil)
			}
		}(i)
	}
	wg.Wait()

	outcome := &models.UploadOutcome{}
	for i := 0; i < count; i++ {
		if results[i].err != nil {
			outcome.Failed = append(outcome.Failed, models.UploadFailure{
				FileName: s.task(i).File.Name,
				Index:    i,
				Err:      results[i].err,
			})
			continue
		}
		outcome.Succeeded = append(outcome.Succeeded, *results[i].doc)
	}

	s.logger.Info("upload batch settled",
		"batch_id", s.batchID,
		"site_id", siteID,
		"succeeded", len(outcome.Succeeded),
		"failed", len(outcome.Failed),
	)
	return outcome, nil
}

// ProgressSnapshot returns an immutable copy of the batch-index →
// last-known-percent map.
func (s *UploadSession) ProgressSnapshot() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[int]int, len(s.progress))
	for index, percent := range s.progress {
		snapshot[index] = percent
	}
	return snapshot
}

// Tasks returns a copy of the per-file task states.
func (s *UploadSession) Tasks() []models.UploadTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.UploadTask(nil), s.tasks...)
}

func (s *UploadSession) task(index int) models.UploadTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[index]
}

func (s *UploadSession) setTaskState(index int, state models.UploadState, err error) {
	s.mu.Lock()
	s.tasks[index].State = state
	s.tasks[index].Err = err
	s.mu.Unlock()
}

// recordProgress stores a per-file percentage, keeping it
// non-decreasing until the task settles, and forwards the update.
func (s *UploadSession) recordProgress(index, percent int, onProgress ProgressFunc) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	s.mu.Lock()
	if percent < s.progress[index] {
		s.mu.Unlock()
		return
	}
	s.progress[index] = percent
	s.tasks[index].ProgressPercent = percent
	s.mu.Unlock()

	if onProgress != nil {
		onProgress(index, percent)
	}
}
