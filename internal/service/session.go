package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"papelog/internal/domain"
	apperrors "papelog/pkg/errors"
)

// Session is the stateful controller behind the whole upload → parse →
// render lifecycle. It owns the Job, the materialized document, every
// per-section transient partition, the knowledge-base save state and the
// poller lifecycle, replacing what used to be a pile of free-floating UI
// state and timers.
//
// One mutex serializes all state transitions; network calls happen outside
// the lock and their results are applied through transition methods that
// re-check whether they still target the active job or section partition.
type Session struct {
	backend domain.BackendClient
	config  domain.Config
	logger  domain.Logger

	mu       sync.Mutex
	epoch    uint64
	job      domain.Job
	doc      *domain.ParsedDocument
	sections map[string]*domain.SectionState
	clips    map[string]*domain.AudioClip
	save     domain.NotionSave
	progress int
	filename string
	poller   *poller

	// Injection points for tests.
	now      func() time.Time
	validate func([]byte) (int, error)
}

// NewSession creates the session controller in its initial, unsubmitted state.
func NewSession(backend domain.BackendClient, config domain.Config, logger domain.Logger) *Session {
	return &Session{
		backend:  backend,
		config:   config,
		logger:   logger,
		job:      domain.Job{State: domain.StateUnsubmitted},
		sections: make(map[string]*domain.SectionState),
		clips:    make(map[string]*domain.AudioClip),
		now:      time.Now,
		validate: ValidatePDF,
	}
}

// Upload submits a PDF for asynchronous parsing.
//
// A call while a submit request is still in flight is rejected; a call while
// a previous job is queued or processing replaces that job: its poller is
// stopped and every piece of session state is reset before the new
// submission's network call is issued. Exactly one network call per
// invocation.
func (s *Session) Upload(ctx context.Context, filename string, content []byte) error {
	s.mu.Lock()
	if s.job.State == domain.StateUploading {
		s.mu.Unlock()
		return apperrors.NewValidationError("an upload is already in progress")
	}
	if len(content) == 0 {
		s.mu.Unlock()
		return apperrors.NewValidationError("select a PDF file to upload")
	}

	s.resetLocked()
	s.job.State = domain.StateFileSelected
	s.filename = filename

	pages, err := s.validate(content)
	if err != nil {
		s.mu.Unlock()
		return apperrors.NewValidationError("the selected file is not a readable PDF", err.Error())
	}

	s.job.State = domain.StateUploading
	s.job.StatusDetail = statusMessage(domain.StateUploading, "")
	epoch := s.epoch
	s.mu.Unlock()

	s.logger.Info("Submitting PDF for parsing", "filename", filename, "pages", pages)

	uploadCtx, cancel := context.WithTimeout(ctx, s.config.GetUploadTimeout())
	defer cancel()
	accepted, err := s.backend.SubmitParse(uploadCtx, filename, content)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A reset issued while the request was in flight wins: the session was
	// cleared, so the submit result is discarded either way.
	if s.epoch != epoch {
		return apperrors.NewProcessingError("the upload was cancelled", nil)
	}

	if err != nil {
		s.failLocked("Upload failed: " + err.Error())
		return apperrors.NewNetworkError("upload failed", err)
	}
	if accepted.JobID == "" {
		s.failLocked("Upload failed: the backend response did not include a job id")
		return apperrors.NewProcessingError("the backend response did not include a job id", nil)
	}

	s.job.ID = accepted.JobID
	s.job.State = domain.StateQueued
	if accepted.Status == domain.BackendStatusProcessing {
		s.job.State = domain.StateProcessing
	}
	s.job.StatusDetail = statusMessage(s.job.State, accepted.StatusDetail)
	s.job.StartedAt = s.now()
	s.raiseProgressLocked(progressFor(s.job.State, accepted.StatusDetail))
	s.startPollerLocked()

	s.logger.Info("Parse job accepted", "job_id", accepted.JobID, "state", s.job.State)
	return nil
}

// ApplyStatus is the poll-response transition function. It returns true when
// polling for jobID must stop. A response arriving after the job was
// cancelled or replaced is ignored: the job identifier is the single
// authoritative cancellation signal.
func (s *Session) ApplyStatus(jobID string, resp *domain.ParseStatusResponse, callErr error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job.ID != jobID || !s.job.State.Active() {
		return true
	}

	if callErr != nil {
		if errors.Is(callErr, domain.ErrJobNotFound) {
			s.failLocked("The parse job was not found on the backend")
		} else {
			s.failLocked("Checking the job status failed: " + callErr.Error())
		}
		return true
	}

	switch resp.Status {
	case domain.BackendStatusQueued:
		s.job.State = domain.StateQueued
		s.job.StatusDetail = statusMessage(domain.StateQueued, resp.StatusDetail)
		s.raiseProgressLocked(progressFor(domain.StateQueued, resp.StatusDetail))
		return false

	case domain.BackendStatusProcessing:
		s.job.State = domain.StateProcessing
		s.job.StatusDetail = statusMessage(domain.StateProcessing, resp.StatusDetail)
		s.raiseProgressLocked(progressFor(domain.StateProcessing, resp.StatusDetail))
		return false

	case domain.BackendStatusCompleted:
		s.job.ClearID()
		s.stopPollerLocked()
		s.installDocumentLocked(resp.Result)
		s.job.State = domain.StateDone
		s.job.StatusDetail = ""
		s.progress = progressDone
		s.logger.Info("Parse job completed", "job_id", jobID, "sections", len(s.doc.Sections))
		return true

	case domain.BackendStatusFailed:
		msg := resp.Error
		if msg == "" {
			msg = "the backend failed to process the document"
		}
		s.failLocked("Processing failed: " + msg)
		return true

	case domain.BackendStatusNotFound:
		s.failLocked("The parse job was not found on the backend")
		return true

	default:
		// Defensive: an unrecognized status is a failure, never a silent skip.
		s.failLocked(fmt.Sprintf("The backend returned an unknown status %q", resp.Status))
		return true
	}
}

// Snapshot returns an immutable view of the session for the status endpoint.
func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.SessionSnapshot{
		State:        s.job.State,
		StatusDetail: s.job.StatusDetail,
		Progress:     s.progress,
		Error:        s.job.Err,
		Document:     s.doc,
		Save:         s.save,
	}
	snap.Save.Tags = append([]string(nil), s.save.Tags...)

	if s.job.State.Active() && !s.job.StartedAt.IsZero() {
		snap.ElapsedSeconds = int(s.now().Sub(s.job.StartedAt).Seconds())
	}

	if len(s.sections) > 0 {
		snap.Sections = make(map[string]domain.SectionState, len(s.sections))
		for id, state := range s.sections {
			view := domain.SectionState{
				Expanded:       state.Expanded,
				Summary:        state.Summary,
				SummaryLoading: state.SummaryLoading,
				AudioLoading:   state.AudioLoading,
				Err:            state.Err,
			}
			if state.Audio != nil && !state.Audio.Released() {
				view.AudioClipID = state.Audio.ID
			}
			snap.Sections[id] = view
		}
	}
	return snap
}

// Reset returns every piece of session state to its initial value.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// SetExpanded toggles one section's expansion flag.
func (s *Session) SetExpanded(sectionID string, expanded bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sections[sectionID]
	if !ok {
		return apperrors.NewNotFoundError("unknown section")
	}
	state.Expanded = expanded
	return nil
}

// KnownAnchor reports whether an in-page hash matches a materialized section
// heading anchor.
func (s *Session) KnownAnchor(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return false
	}
	known := false
	s.doc.WalkSections(func(sec *domain.Section) {
		if sec.Anchor != "" && "#"+sec.Anchor == hash {
			known = true
		}
	})
	return known
}

// SaveToNotion persists the curated record through the backend. Failures are
// local to the save state: the materialized document stays intact and
// interactive.
func (s *Session) SaveToNotion(ctx context.Context, tags []string, rating, memo string) error {
	s.mu.Lock()
	if s.doc == nil {
		s.mu.Unlock()
		return apperrors.NewValidationError("no parsed document to save")
	}
	title := strings.TrimSpace(s.doc.Meta.Title)
	if title == "" {
		s.save.Err = "A title is required to save"
		s.mu.Unlock()
		return apperrors.NewValidationError("a title is required to save")
	}

	record := &domain.SaveToNotionRequest{
		Title:             title,
		Authors:           append([]string(nil), s.doc.Meta.Authors...),
		Journal:           s.doc.Meta.Journal,
		PublishedDate:     s.doc.Meta.Issued,
		DOI:               s.doc.Meta.DOI,
		PDFFilename:       s.doc.PDFFilename,
		PDFGoogleDriveURL: s.doc.Meta.GoogleDriveURL,
		OriginalAbstract:  s.doc.Meta.Abstract,
		Tags:              append([]string(nil), tags...),
		Rating:            rating,
		Memo:              memo,
	}
	s.save = domain.NotionSave{Tags: record.Tags, Rating: rating, Memo: memo, Saving: true}
	s.mu.Unlock()

	resp, err := s.backend.SaveToNotion(ctx, record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.save.Saving = false
	if err != nil {
		s.save.Err = "Saving to the knowledge base failed: " + err.Error()
		return apperrors.NewNetworkError("saving to the knowledge base failed", err)
	}
	if !resp.Success {
		s.save.Err = "The knowledge base rejected the record"
		return apperrors.NewProcessingError("the knowledge base rejected the record", nil)
	}
	s.save.Saved = true
	s.save.URL = resp.URL
	return nil
}

// failLocked records a terminal failure: the job identifier is cleared
// first, so any in-flight poll response detaches, then the poller is stopped.
func (s *Session) failLocked(msg string) {
	s.job.ClearID()
	s.stopPollerLocked()
	s.job.State = domain.StateFailed
	s.job.Err = msg
	s.job.StatusDetail = ""
	s.logger.Warn("Session entered failed state", "reason", msg)
}

func (s *Session) resetLocked() {
	s.epoch++
	s.stopPollerLocked()
	for _, clip := range s.clips {
		clip.Release()
	}
	s.clips = make(map[string]*domain.AudioClip)
	s.sections = make(map[string]*domain.SectionState)
	s.doc = nil
	s.job = domain.Job{State: domain.StateUnsubmitted}
	s.save = domain.NotionSave{}
	s.progress = 0
	s.filename = ""
}

// installDocumentLocked materializes the terminal payload atomically and
// creates a fresh, collapsed partition for every section.
func (s *Session) installDocumentLocked(raw *domain.RawResult) {
	s.doc = Materialize(raw, s.filename)
	s.sections = make(map[string]*domain.SectionState)
	s.doc.WalkSections(func(sec *domain.Section) {
		s.sections[sec.ID] = &domain.SectionState{}
	})
}

// raiseProgressLocked keeps the displayed percentage monotonic.
func (s *Session) raiseProgressLocked(p int) {
	if p > s.progress {
		s.progress = p
	}
}
