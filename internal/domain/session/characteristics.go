package session

// ContentType classifies what a session was mostly about.
type ContentType string

const (
	ContentTypeCode       ContentType = "code"
	ContentTypeMedia      ContentType = "media"
	ContentTypeDiscussion ContentType = "discussion"
	ContentTypeVisual     ContentType = "visual"
	ContentTypeMixed      ContentType = "mixed"
)

// String returns the string representation of the content type.
func (t ContentType) String() string {
	return string(t)
}

// Intensity buckets the total content volume of a session.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityHeavy    Intensity = "heavy"
)

// String returns the string representation of the intensity.
func (i Intensity) String() string {
	return string(i)
}

// Capability flag names. Module definitions declare these in their requires
// map; Flags exposes the matching truth values for a session.
const (
	FlagHasCode        = "hasCode"
	FlagHasVideo       = "hasVideo"
	FlagHasAudio       = "hasAudio"
	FlagHasScreenshots = "hasScreenshots"
	FlagHasDecisions   = "hasDecisions"
	FlagHasNotes       = "hasNotes"
	FlagHasTasks       = "hasTasks"
)

// Characteristics is the derived summary of a session's content. It is
// computed fresh on every generation call and never mutated in place.
type Characteristics struct {
	HasCodeChanges    bool `json:"hasCodeChanges"`
	CodeChangeCount   int  `json:"codeChangeCount"`
	HasVideoContent   bool `json:"hasVideoContent"`
	VideoChapterCount int  `json:"videoChapterCount"`
	HasAudioContent   bool `json:"hasAudioContent"`
	AudioSegmentCount int  `json:"audioSegmentCount"`
	HasScreenshots    bool `json:"hasScreenshots"`
	ScreenshotCount   int  `json:"screenshotCount"`
	HasDecisions      bool `json:"hasDecisions"`
	DecisionCount     int  `json:"decisionCount"`
	HasNotes          bool `json:"hasNotes"`
	NoteCount         int  `json:"noteCount"`
	HasTasks          bool `json:"hasTasks"`
	TaskCount         int  `json:"taskCount"`

	// Duration is in whole minutes.
	Duration         int `json:"duration"`
	ParticipantCount int `json:"participantCount"`

	PrimaryContentType ContentType `json:"primaryContentType"`
	Intensity          Intensity   `json:"intensity"`
}

// Flags returns the capability truth values modules match their requires
// against.
func (c Characteristics) Flags() map[string]bool {
	return map[string]bool{
		FlagHasCode:        c.HasCodeChanges,
		FlagHasVideo:       c.HasVideoContent,
		FlagHasAudio:       c.HasAudioContent,
		FlagHasScreenshots: c.HasScreenshots,
		FlagHasDecisions:   c.HasDecisions,
		FlagHasNotes:       c.HasNotes,
		FlagHasTasks:       c.HasTasks,
	}
}

// TotalContentCount sums every content counter. Duration and participants do
// not count as content.
func (c Characteristics) TotalContentCount() int {
	return c.CodeChangeCount + c.VideoChapterCount + c.AudioSegmentCount +
		c.ScreenshotCount + c.DecisionCount + c.NoteCount + c.TaskCount
}
