package domain

// Step is a position in the submission wizard.
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepPlatform
	StepMedia
	StepMarketplace
	StepReview
)

var stepNames = map[Step]string{
	StepBasicInfo:   "basic_info",
	StepPlatform:    "platform",
	StepMedia:       "media",
	StepMarketplace: "marketplace",
	StepReview:      "review",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "unknown"
}

// MediaKind selects which media slot an upload fills.
type MediaKind string

const (
	MediaThumbnail  MediaKind = "thumbnail"
	MediaScreenshot MediaKind = "screenshot"
)

// ConfirmOutcome is the choice offered by the review confirmation overlay.
type ConfirmOutcome string

const (
	// OutcomeSubmit persists and sends the project to review.
	OutcomeSubmit ConfirmOutcome = "submit"
	// OutcomeDraft persists without touching the backend status.
	OutcomeDraft ConfirmOutcome = "draft"
)

// CompletionCheck is one of the weighted review checks.
type CompletionCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// Completion summarises how ready a draft is for submission.
type Completion struct {
	Percent int               `json:"percent"`
	Checks  []CompletionCheck `json:"checks"`
}

// Ready reports whether the terminal submit action is enabled.
func (c Completion) Ready() bool {
	return c.Percent == 100
}

// WizardState is a snapshot of a wizard for rendering.
type WizardState struct {
	Step             Step         `json:"step"`
	StepName         string       `json:"stepName"`
	Draft            DraftProject `json:"draft"`
	Completion       Completion   `json:"completion"`
	ConfirmationOpen bool         `json:"confirmationOpen"`
	Busy             bool         `json:"busy"`
	Closed           bool         `json:"closed"`
}
