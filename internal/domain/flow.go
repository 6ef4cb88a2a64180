package domain

// FlowState is a state of the analysis request flow.
type FlowState string

const (
	StateIdle       FlowState = "idle"
	StateValidating FlowState = "validating"
	StateRequesting FlowState = "requesting"
	StateSuccess    FlowState = "success"
	StateFailed     FlowState = "failed"
)

// FeedbackKind classifies user-visible notifications.
type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackWarning FeedbackKind = "warning"
	FeedbackError   FeedbackKind = "error"
)

// FlowEvent is emitted on every state transition.
type FlowEvent struct {
	From   FlowState
	To     FlowState
	Text   string
	Result *AnalysisResult
	Err    error
}
