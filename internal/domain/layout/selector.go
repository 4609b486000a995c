package layout

import (
	"fmt"
	"time"

	"github.com/recaphq/recap-server/internal/domain/session"
)

// Rule thresholds. A numeric rule fires only strictly above its threshold.
const (
	deepWorkCodeChangeThreshold = 10
	learningChapterThreshold    = 3
	meetingParticipantThreshold = 1
	researchScreenshotThreshold = 20
)

// Confidence bands. Matched rules score in [confidenceBase, confidenceBase+confidenceSpread)
// depending on how far the driving signal clears its threshold.
const (
	confidenceManual  = 1.0
	confidenceBase    = 0.70
	confidenceSpread  = 0.25
	confidenceDefault = 0.50
)

// Selection is the outcome of layout selection for one session.
type Selection struct {
	LayoutType   Type          `json:"layoutType"`
	Confidence   float64       `json:"confidence"`
	Reasoning    []string      `json:"reasoning"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

// Alternative is a layout whose rule also matched, ranked below the winner.
type Alternative struct {
	LayoutType Type    `json:"layoutType"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// ruleOutcome carries one rule evaluation. margin is how far the driving
// value cleared its threshold, as a fraction of the threshold; boolean rules
// report 0.
type ruleOutcome struct {
	matched bool
	margin  float64
	detail  string
}

type rule struct {
	layout   Type
	evaluate func(session.Characteristics) ruleOutcome
}

// Selector picks a layout for a session by walking an ordered rule list.
// The first matching rule wins; every rule is still evaluated so the
// reasoning trail and the alternatives are complete.
type Selector struct {
	rules []rule
}

// NewSelector creates a selector with the built-in rule order.
func NewSelector() *Selector {
	return &Selector{rules: []rule{
		{layout: TypeDeepWorkDev, evaluate: evaluateDeepWork},
		{layout: TypeLearningSession, evaluate: evaluateLearning},
		{layout: TypeCollaborativeMeeting, evaluate: evaluateMeeting},
		{layout: TypeResearchReview, evaluate: evaluateResearch},
		{layout: TypeCreativeWorkshop, evaluate: evaluateWorkshop},
		{layout: TypePresentation, evaluate: evaluatePresentation},
	}}
}

// Select walks the rule chain over the session characteristics. When no rule
// matches, the default layout is selected at low confidence.
func (s *Selector) Select(c session.Characteristics) Selection {
	type match struct {
		layout     Type
		confidence float64
		detail     string
	}

	reasoning := make([]string, 0, len(s.rules)+1)
	var matches []match
	for _, r := range s.rules {
		out := r.evaluate(c)
		if out.matched {
			reasoning = append(reasoning, fmt.Sprintf("%s: matched (%s)", r.layout, out.detail))
			matches = append(matches, match{r.layout, matchConfidence(out.margin), out.detail})
			continue
		}
		reasoning = append(reasoning, fmt.Sprintf("%s: skipped (%s)", r.layout, out.detail))
	}

	if len(matches) == 0 {
		reasoning = append(reasoning, fmt.Sprintf("%s: selected (no rule matched)", TypeDefault))
		return Selection{
			LayoutType: TypeDefault,
			Confidence: confidenceDefault,
			Reasoning:  reasoning,
			Timestamp:  time.Now().UTC(),
		}
	}

	winner := matches[0]
	reasoning = append(reasoning, fmt.Sprintf("%s: selected (first matching rule)", winner.layout))

	var alternatives []Alternative
	for _, m := range matches[1:] {
		alternatives = append(alternatives, Alternative{
			LayoutType: m.layout,
			Confidence: m.confidence,
			Reason:     m.detail,
		})
	}

	return Selection{
		LayoutType:   winner.layout,
		Confidence:   winner.confidence,
		Reasoning:    reasoning,
		Alternatives: alternatives,
		Timestamp:    time.Now().UTC(),
	}
}

// Manual returns a selection for a caller-chosen layout, bypassing the rules.
func (s *Selector) Manual(layoutType Type) Selection {
	return Selection{
		LayoutType: layoutType,
		Confidence: confidenceManual,
		Reasoning:  []string{fmt.Sprintf("%s: requested by caller", layoutType)},
		Timestamp:  time.Now().UTC(),
	}
}

// matchConfidence maps a threshold margin onto the matched confidence band.
// It grows with the margin but never reaches confidenceBase+confidenceSpread.
func matchConfidence(margin float64) float64 {
	if margin <= 0 {
		return confidenceBase
	}
	return confidenceBase + confidenceSpread*margin/(1+margin)
}

// overThreshold returns how far value clears threshold, as a fraction of the
// threshold.
func overThreshold(value, threshold int) float64 {
	return float64(value-threshold) / float64(threshold)
}

func evaluateDeepWork(c session.Characteristics) ruleOutcome {
	if !c.HasCodeChanges {
		return ruleOutcome{detail: "no code activity detected"}
	}
	if c.CodeChangeCount <= deepWorkCodeChangeThreshold {
		return ruleOutcome{detail: fmt.Sprintf("%d code changes at or below threshold %d",
			c.CodeChangeCount, deepWorkCodeChangeThreshold)}
	}
	return ruleOutcome{
		matched: true,
		margin:  overThreshold(c.CodeChangeCount, deepWorkCodeChangeThreshold),
		detail: fmt.Sprintf("%d code changes exceed threshold %d",
			c.CodeChangeCount, deepWorkCodeChangeThreshold),
	}
}

func evaluateLearning(c session.Characteristics) ruleOutcome {
	if !c.HasVideoContent {
		return ruleOutcome{detail: "no video content"}
	}
	if c.VideoChapterCount <= learningChapterThreshold {
		return ruleOutcome{detail: fmt.Sprintf("%d video chapters at or below threshold %d",
			c.VideoChapterCount, learningChapterThreshold)}
	}
	return ruleOutcome{
		matched: true,
		margin:  overThreshold(c.VideoChapterCount, learningChapterThreshold),
		detail: fmt.Sprintf("%d video chapters exceed threshold %d",
			c.VideoChapterCount, learningChapterThreshold),
	}
}

func evaluateMeeting(c session.Characteristics) ruleOutcome {
	if !c.HasDecisions {
		return ruleOutcome{detail: "no recorded decisions"}
	}
	if c.ParticipantCount <= meetingParticipantThreshold {
		return ruleOutcome{detail: "single participant"}
	}
	return ruleOutcome{
		matched: true,
		margin:  overThreshold(c.ParticipantCount, meetingParticipantThreshold),
		detail: fmt.Sprintf("%d decisions across %d participants",
			c.DecisionCount, c.ParticipantCount),
	}
}

func evaluateResearch(c session.Characteristics) ruleOutcome {
	if !c.HasScreenshots {
		return ruleOutcome{detail: "no screenshots"}
	}
	if c.ScreenshotCount <= researchScreenshotThreshold {
		return ruleOutcome{detail: fmt.Sprintf("%d screenshots at or below threshold %d",
			c.ScreenshotCount, researchScreenshotThreshold)}
	}
	return ruleOutcome{
		matched: true,
		margin:  overThreshold(c.ScreenshotCount, researchScreenshotThreshold),
		detail: fmt.Sprintf("%d screenshots exceed threshold %d",
			c.ScreenshotCount, researchScreenshotThreshold),
	}
}

func evaluateWorkshop(c session.Characteristics) ruleOutcome {
	if !c.HasScreenshots {
		return ruleOutcome{detail: "no screenshots"}
	}
	if !c.HasNotes {
		return ruleOutcome{detail: "no notes attached"}
	}
	return ruleOutcome{
		matched: true,
		detail:  "screenshots combined with notes",
	}
}

func evaluatePresentation(c session.Characteristics) ruleOutcome {
	if !c.HasVideoContent {
		return ruleOutcome{detail: "no video content"}
	}
	if !c.HasScreenshots {
		return ruleOutcome{detail: "no screenshots"}
	}
	if c.ParticipantCount != 1 {
		return ruleOutcome{detail: fmt.Sprintf("%d participants, not a single presenter",
			c.ParticipantCount)}
	}
	return ruleOutcome{
		matched: true,
		detail:  "video with screenshots and a single participant",
	}
}
