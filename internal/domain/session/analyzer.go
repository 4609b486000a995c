package session

import "strings"

// devActivityIndicators is the vocabulary that marks a screenshot as
// development activity. Matching is a case-insensitive substring test against
// the detected activity and every key element.
var devActivityIndicators = []string{
	"coding",
	"programming",
	"vscode",
	"intellij",
	"xcode",
	"vim",
	"terminal",
	"git",
	"debugging",
	"editor",
	"ide",
}

// Analyze derives content characteristics from raw session data. It is a pure
// function: an empty input yields all-zero counts, mixed content, and light
// intensity.
func Analyze(data Data) Characteristics {
	c := Characteristics{}

	c.ScreenshotCount = len(data.Screenshots)
	c.HasScreenshots = c.ScreenshotCount > 0

	c.AudioSegmentCount = len(data.AudioSegments)
	c.HasAudioContent = c.AudioSegmentCount > 0

	if data.Video != nil {
		c.HasVideoContent = true
		c.VideoChapterCount = len(data.Video.Chapters)
	}

	c.TaskCount = len(data.ExtractedTaskIDs)
	c.HasTasks = c.TaskCount > 0

	c.NoteCount = len(data.ExtractedNoteIDs)
	c.HasNotes = c.NoteCount > 0

	c.CodeChangeCount = countCodeChanges(data.Screenshots)
	c.HasCodeChanges = c.CodeChangeCount > 0

	c.DecisionCount = countDecisions(data.AudioInsights)
	c.HasDecisions = c.DecisionCount > 0

	c.Duration = durationMinutes(data)
	c.ParticipantCount = max(1, len(data.Participants))

	c.PrimaryContentType = primaryContentType(c)
	c.Intensity = intensityFor(c.TotalContentCount())

	return c
}

// countCodeChanges counts screenshots whose annotations match the development
// vocabulary.
func countCodeChanges(screenshots []Screenshot) int {
	count := 0
	for _, shot := range screenshots {
		if shot.AIAnalysis == nil {
			continue
		}
		if isDevActivity(shot.AIAnalysis.DetectedActivity) {
			count++
			continue
		}
		for _, element := range shot.AIAnalysis.KeyElements {
			if isDevActivity(element) {
				count++
				break
			}
		}
	}
	return count
}

func isDevActivity(value string) bool {
	if value == "" {
		return false
	}
	lowered := strings.ToLower(value)
	for _, indicator := range devActivityIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}

// countDecisions sums decision-typed key moments and the flat insight list.
func countDecisions(insights *AudioInsights) int {
	if insights == nil {
		return 0
	}
	count := len(insights.Insights)
	for _, moment := range insights.KeyMoments {
		if strings.EqualFold(moment.Type, "decision") {
			count++
		}
	}
	return count
}

// durationMinutes prefers the timestamp pair, then the explicit duration
// field, then zero.
func durationMinutes(data Data) int {
	if data.StartTime != nil && data.EndTime != nil && !data.EndTime.Before(*data.StartTime) {
		return int(data.EndTime.Sub(*data.StartTime).Minutes())
	}
	if data.Duration != nil && *data.Duration > 0 {
		return *data.Duration
	}
	return 0
}

// primaryContentType picks the dominant content type. A single active signal
// wins outright; competing signals fall through ratio tie-breaks in a fixed
// order.
func primaryContentType(c Characteristics) ContentType {
	code := c.HasCodeChanges
	media := c.HasVideoContent || c.HasAudioContent
	discussion := c.HasDecisions
	visual := c.HasScreenshots

	active := 0
	for _, signal := range []bool{code, media, discussion, visual} {
		if signal {
			active++
		}
	}

	switch active {
	case 0:
		return ContentTypeMixed
	case 1:
		switch {
		case code:
			return ContentTypeCode
		case media:
			return ContentTypeMedia
		case discussion:
			return ContentTypeDiscussion
		default:
			return ContentTypeVisual
		}
	}

	if float64(c.CodeChangeCount)/float64(max(1, c.ScreenshotCount)) > 0.5 {
		return ContentTypeCode
	}
	if float64(c.VideoChapterCount+c.AudioSegmentCount)/float64(max(1, c.Duration)) > 0.2 {
		return ContentTypeMedia
	}
	if c.DecisionCount > 3 {
		return ContentTypeDiscussion
	}
	if c.ScreenshotCount > 10 {
		return ContentTypeVisual
	}
	return ContentTypeMixed
}

// intensityFor buckets the summed content count. Boundaries are exact: 9 is
// light, 10 moderate, 49 moderate, 50 heavy.
func intensityFor(total int) Intensity {
	switch {
	case total < 10:
		return IntensityLight
	case total < 50:
		return IntensityModerate
	default:
		return IntensityHeavy
	}
}
