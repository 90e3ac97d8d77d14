package domain

import (
	"sync"

	"github.com/google/uuid"
)

// AudioClip is a playable text-to-speech result held in memory until the UI
// finishes playback or a newer clip replaces it. Release is idempotent: the
// underlying payload is dropped exactly once.
type AudioClip struct {
	ID   string
	MIME string

	mu       sync.Mutex
	data     []byte
	released bool
}

// NewAudioClip wraps a synthesized audio payload in a releasable handle.
func NewAudioClip(mime string, data []byte) *AudioClip {
	return &AudioClip{
		ID:   uuid.NewString(),
		MIME: mime,
		data: data,
	}
}

// Data returns the audio payload, or nil once released.
func (c *AudioClip) Data() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return nil
	}
	return c.data
}

// Release frees the payload. It reports whether this call actually released
// the clip, so callers can verify a clip is never released twice.
func (c *AudioClip) Release() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return false
	}
	c.released = true
	c.data = nil
	return true
}

// Released reports whether the clip's payload has been freed.
func (c *AudioClip) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

// SectionState is the transient UI state of one section, keyed by the
// section's synthetic ID. Partitions are independent: acting on one section
// never touches another's partition.
type SectionState struct {
	Expanded       bool       `json:"expanded"`
	Summary        string     `json:"summary,omitempty"`
	SummaryLoading bool       `json:"summary_loading"`
	Audio          *AudioClip `json:"-"`
	AudioClipID    string     `json:"audio_clip_id,omitempty"`
	AudioLoading   bool       `json:"audio_loading"`
	Err            string     `json:"error,omitempty"`
}

// NotionSave is the curated-record form plus the state of the save action.
type NotionSave struct {
	Tags   []string `json:"tags,omitempty"`
	Rating string   `json:"rating,omitempty"`
	Memo   string   `json:"memo,omitempty"`
	Saving bool     `json:"saving"`
	Saved  bool     `json:"saved"`
	URL    string   `json:"url,omitempty"`
	Err    string   `json:"error,omitempty"`
}

// SessionSnapshot is an immutable view of the whole session, rendered by the
// status endpoint. Exactly one top-level status/error message is active at a
// time; per-section messages live in their partitions.
type SessionSnapshot struct {
	State          JobState                `json:"state"`
	StatusDetail   string                  `json:"status_detail,omitempty"`
	Progress       int                     `json:"progress"`
	Error          string                  `json:"error,omitempty"`
	ElapsedSeconds int                     `json:"elapsed_seconds,omitempty"`
	Document       *ParsedDocument         `json:"document,omitempty"`
	Sections       map[string]SectionState `json:"sections,omitempty"`
	Save           NotionSave              `json:"save"`
}
