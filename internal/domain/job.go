package domain

import "time"

// JobState is the lifecycle state of a parse job as seen by this client.
type JobState string

const (
	StateUnsubmitted  JobState = "unsubmitted"
	StateFileSelected JobState = "file_selected"
	StateUploading    JobState = "uploading"
	StateQueued       JobState = "queued"
	StateProcessing   JobState = "processing"
	StateDone         JobState = "done"
	StateFailed       JobState = "failed"
)

// Terminal reports whether no further transition can happen without a new upload.
func (s JobState) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Active reports whether an upload or a backend job is currently in flight.
// Poll responses only apply while the job is active.
func (s JobState) Active() bool {
	return s == StateUploading || s == StateQueued || s == StateProcessing
}

// Job is the client-side handle for one asynchronous parse job.
// The ID is non-empty only while the state is queued or processing;
// clearing it is the authoritative cancellation signal for the poller.
type Job struct {
	ID           string    `json:"id,omitempty"`
	State        JobState  `json:"state"`
	StatusDetail string    `json:"status_detail,omitempty"`
	Err          string    `json:"error,omitempty"`
	StartedAt    time.Time `json:"-"`
}

// ClearID drops the job identifier, detaching any in-flight poll responses.
func (j *Job) ClearID() {
	j.ID = ""
}
