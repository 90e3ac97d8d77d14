package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"papelog/internal/domain"
	apperrors "papelog/pkg/errors"
)

const (
	summaryMaxTokens = 1000

	// Shown instead of a summary when the section has no body text. No
	// request is made for such sections.
	noSummaryPlaceholder = "There is no text to summarize."

	summarizeAllWorkers = 4
)

// Summarize fetches an AI summary for one section and stores it in that
// section's partition. Errors land in the same partition; other sections are
// never touched.
func (s *Session) Summarize(ctx context.Context, sectionID string) error {
	s.mu.Lock()
	state, ok := s.sections[sectionID]
	if !ok || s.doc == nil {
		s.mu.Unlock()
		return apperrors.NewNotFoundError("unknown section")
	}
	if state.SummaryLoading {
		s.mu.Unlock()
		return apperrors.NewProcessingError("a summary request for this section is already in progress", nil)
	}
	section := s.doc.FindSection(sectionID)
	text := strings.TrimSpace(section.PlainText)
	if text == "" {
		state.Summary = noSummaryPlaceholder
		state.Err = ""
		s.mu.Unlock()
		return nil
	}
	state.SummaryLoading = true
	state.Err = ""
	s.mu.Unlock()

	summary, err := s.backend.Summarize(ctx, text, summaryMaxTokens)

	s.mu.Lock()
	defer s.mu.Unlock()
	// The session may have been reset while the request was in flight.
	state, ok = s.sections[sectionID]
	if !ok {
		return nil
	}
	state.SummaryLoading = false
	if err != nil {
		state.Err = "Failed to fetch the summary: " + err.Error()
		s.logger.Error("Summarize failed", err, "section_id", sectionID)
		return apperrors.NewNetworkError("failed to fetch the summary", err)
	}
	state.Summary = summary
	return nil
}

// SummarizeAll summarizes every content section that has body text and no
// summary yet, a bounded number at a time. Per-section failures stay in
// their partitions; the call itself only fails when no document is loaded.
func (s *Session) SummarizeAll(ctx context.Context) error {
	s.mu.Lock()
	if s.doc == nil {
		s.mu.Unlock()
		return apperrors.NewValidationError("no parsed document")
	}
	var pending []string
	s.doc.WalkSections(func(sec *domain.Section) {
		if sec.IsReference || strings.TrimSpace(sec.PlainText) == "" {
			return
		}
		if state, ok := s.sections[sec.ID]; ok && state.Summary == "" && !state.SummaryLoading {
			pending = append(pending, sec.ID)
		}
	})
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summarizeAllWorkers)
	for _, id := range pending {
		id := id
		g.Go(func() error {
			// Errors are recorded per partition; one failed section must
			// not cancel its siblings.
			_ = s.Summarize(gctx, id)
			return nil
		})
	}
	return g.Wait()
}

// Speak synthesizes speech for one section, preferring its summary over the
// full body text. A new clip replaces the section's previous one, which is
// released immediately.
func (s *Session) Speak(ctx context.Context, sectionID string) (string, error) {
	s.mu.Lock()
	state, ok := s.sections[sectionID]
	if !ok || s.doc == nil {
		s.mu.Unlock()
		return "", apperrors.NewNotFoundError("unknown section")
	}
	if state.AudioLoading {
		s.mu.Unlock()
		return "", apperrors.NewProcessingError("a speech request for this section is already in progress", nil)
	}
	text := state.Summary
	if text == "" || text == noSummaryPlaceholder {
		text = s.doc.FindSection(sectionID).PlainText
	}
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return "", apperrors.NewValidationError("the section has no text to speak")
	}
	state.AudioLoading = true
	state.Err = ""
	s.mu.Unlock()

	data, mime, err := s.backend.Synthesize(ctx, text, s.config.GetTTSLanguage())

	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok = s.sections[sectionID]
	if !ok {
		return "", nil
	}
	state.AudioLoading = false
	if err != nil {
		state.Err = "Speech synthesis failed: " + err.Error()
		s.logger.Error("Speech synthesis failed", err, "section_id", sectionID)
		return "", apperrors.NewNetworkError("speech synthesis failed", err)
	}

	clip := domain.NewAudioClip(mime, data)
	s.replaceClipLocked(state, clip)
	return clip.ID, nil
}

// ReleaseAudio frees a section's clip once playback finishes.
func (s *Session) ReleaseAudio(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sections[sectionID]
	if !ok {
		return apperrors.NewNotFoundError("unknown section")
	}
	if state.Audio == nil {
		return nil
	}
	state.Audio.Release()
	delete(s.clips, state.Audio.ID)
	state.Audio = nil
	return nil
}

// Clip looks up a playable clip by its identifier.
func (s *Session) Clip(clipID string) (*domain.AudioClip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clip, ok := s.clips[clipID]
	if !ok || clip.Released() {
		return nil, apperrors.NewNotFoundError("unknown audio clip")
	}
	return clip, nil
}

// replaceClipLocked installs a new clip in a partition, releasing and
// unindexing the one it replaces.
func (s *Session) replaceClipLocked(state *domain.SectionState, clip *domain.AudioClip) {
	if state.Audio != nil {
		state.Audio.Release()
		delete(s.clips, state.Audio.ID)
	}
	state.Audio = clip
	s.clips[clip.ID] = clip
}
