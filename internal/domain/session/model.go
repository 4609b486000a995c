// Package session defines the session telemetry schema and the analyzer that
// derives content characteristics from it.
package session

import (
	"fmt"
	"time"

	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
)

// Data is the session telemetry bundle handed to the engine by the capture
// surface. Every field is optional; a missing field defaults the derived
// characteristic to zero or false.
type Data struct {
	UserID           string         `json:"userId,omitempty"`
	StartTime        *time.Time     `json:"startTime,omitempty"`
	EndTime          *time.Time     `json:"endTime,omitempty"`
	Duration         *int           `json:"duration,omitempty"`
	Screenshots      []Screenshot   `json:"screenshots,omitempty"`
	AudioSegments    []AudioSegment `json:"audioSegments,omitempty"`
	Video            *Video         `json:"video,omitempty"`
	AudioInsights    *AudioInsights `json:"audioInsights,omitempty"`
	ExtractedTaskIDs []string       `json:"extractedTaskIds,omitempty"`
	ExtractedNoteIDs []string       `json:"extractedNoteIds,omitempty"`
	Participants     []string       `json:"participants,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
	Permissions      []string       `json:"permissions,omitempty"`
}

// Screenshot is one captured frame with optional AI annotations.
type Screenshot struct {
	ID         string      `json:"id,omitempty"`
	Timestamp  *time.Time  `json:"timestamp,omitempty"`
	AIAnalysis *AIAnalysis `json:"aiAnalysis,omitempty"`
}

// AIAnalysis carries the upstream vision annotations for a screenshot. The
// engine only reads them; it never produces them.
type AIAnalysis struct {
	DetectedActivity string   `json:"detectedActivity,omitempty"`
	KeyElements      []string `json:"keyElements,omitempty"`
}

// AudioSegment is one recorded audio span.
type AudioSegment struct {
	ID         string  `json:"id,omitempty"`
	StartTime  float64 `json:"startTime,omitempty"`
	EndTime    float64 `json:"endTime,omitempty"`
	Transcript string  `json:"transcript,omitempty"`
}

// Video is the recorded screen video, if any. Its presence alone marks the
// session as having video content, even with zero chapters.
type Video struct {
	DurationSeconds float64        `json:"durationSeconds,omitempty"`
	Chapters        []VideoChapter `json:"chapters,omitempty"`
}

// VideoChapter is one detected chapter boundary in the session video.
type VideoChapter struct {
	Title     string  `json:"title,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty"`
}

// AudioInsights carries the upstream audio analysis.
type AudioInsights struct {
	KeyMoments []KeyMoment `json:"keyMoments,omitempty"`
	Insights   []string    `json:"insights,omitempty"`
}

// KeyMoment is one notable moment extracted from the audio track.
type KeyMoment struct {
	Timestamp   float64 `json:"timestamp,omitempty"`
	Type        string  `json:"type,omitempty"`
	Description string  `json:"description,omitempty"`
	Context     string  `json:"context,omitempty"`
	Excerpt     string  `json:"excerpt,omitempty"`
}

// Validate rejects session data that is structurally present but malformed.
// Missing fields are fine; contradictory ones are not.
func (d *Data) Validate() error {
	if d.StartTime != nil && d.EndTime != nil && d.EndTime.Before(*d.StartTime) {
		return engineErrors.NewInvalidSessionData(
			fmt.Sprintf("endTime %s precedes startTime %s", d.EndTime.Format(time.RFC3339), d.StartTime.Format(time.RFC3339)))
	}
	if d.Duration != nil && *d.Duration < 0 {
		return engineErrors.NewInvalidSessionData(fmt.Sprintf("negative duration: %d", *d.Duration))
	}
	if d.Video != nil && d.Video.DurationSeconds < 0 {
		return engineErrors.NewInvalidSessionData("negative video duration")
	}
	return nil
}
