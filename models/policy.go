package models

// DecisionOutcome is the verdict of a policy evaluation.
type DecisionOutcome string

const (
	OutcomeAllowed          DecisionOutcome = "allowed"
	OutcomeApprovalRequired DecisionOutcome = "approval_required"
	OutcomeBlocked          DecisionOutcome = "blocked"
)

// ReasonSeverity ranks a policy reason.
type ReasonSeverity string

const (
	SeverityInfo     ReasonSeverity = "info"
	SeverityWarning  ReasonSeverity = "warning"
	SeverityCritical ReasonSeverity = "critical"
)

// ReasonCode is the machine-readable category attached to each reason.
type ReasonCode string

const (
	ReasonProgram    ReasonCode = "PROGRAM"
	ReasonFields     ReasonCode = "FIELDS"
	ReasonAttachment ReasonCode = "ATTACH"
	ReasonVendor     ReasonCode = "VENDOR"
	ReasonAmount     ReasonCode = "AMOUNT"
	ReasonOK         ReasonCode = "OK"
)

// Reason explains one policy finding. Violations are data, not errors.
type Reason struct {
	Code     ReasonCode     `json:"code"`
	Title    string         `json:"title"`
	Detail   string         `json:"detail,omitempty"`
	Severity ReasonSeverity `json:"severity"`
}

// Alternative suggests a different path when policy blocks or warns.
type Alternative struct {
	Title           string `json:"title"`
	ExpectedOutcome string `json:"expected_outcome"`
}

// CoachTip is advisory guidance; it never affects the outcome.
type CoachTip struct {
	Message string `json:"message"`
}

// PolicyDecision is a view over current inputs, recomputed on every
// field edit and never persisted as authoritative state.
type PolicyDecision struct {
	Outcome      DecisionOutcome `json:"outcome"`
	Reasons      []Reason        `json:"reasons"`
	Alternatives []Alternative   `json:"alternatives,omitempty"`
	CoachTips    []CoachTip      `json:"coach_tips,omitempty"`
}

// CorporateState is the simplified display projection of a decision.
type CorporateState string

const (
	CorporateAvailable        CorporateState = "available"
	CorporateRequiresApproval CorporateState = "requires_approval"
	CorporateNotAvailable     CorporateState = "not_available"
)
