package service

import (
	"strings"

	"papelog/internal/domain"
)

// Progress defaults when the backend sends no recognizable detail.
const (
	progressQueued     = 5
	progressProcessing = 50
	progressDone       = 100
)

// detailProgress maps known backend status-detail strings (normalized) to a
// progress percentage. The session keeps the displayed percentage monotonic,
// so a late message mapping lower never regresses the bar.
var detailProgress = map[string]int{
	"waiting for a worker":          5,
	"uploading the pdf to storage":  10,
	"running structural extraction": 40,
	"extracting document metadata":  55,
	"extracting figures":            65,
	"extracting tables":             75,
	"formatting sections":           85,
	"generating tag suggestions":    90,
	"finalizing results":            95,
}

func normalizeDetail(detail string) string {
	detail = strings.ToLower(strings.TrimSpace(detail))
	return strings.TrimRight(detail, ".… ")
}

// progressFor resolves the percentage for one status response.
func progressFor(state domain.JobState, detail string) int {
	if p, ok := detailProgress[normalizeDetail(detail)]; ok {
		return p
	}
	switch state {
	case domain.StateQueued:
		return progressQueued
	case domain.StateProcessing:
		return progressProcessing
	case domain.StateDone:
		return progressDone
	}
	return 0
}

// statusMessage picks the user-visible progress text: the backend's detail
// when present, else a default keyed to the current state.
func statusMessage(state domain.JobState, detail string) string {
	if strings.TrimSpace(detail) != "" {
		return detail
	}
	switch state {
	case domain.StateQueued:
		return "Waiting in queue..."
	case domain.StateProcessing:
		return "Analyzing the paper..."
	case domain.StateUploading:
		return "Uploading the PDF..."
	}
	return ""
}
