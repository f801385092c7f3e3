package policy

import (
	"ai-support-chat-be/pkg/classifier"
	"ai-support-chat-be/pkg/store"
)

// Resolution states of an assistant turn.
const (
	ResolutionAnswered           = "ANSWERED"
	ResolutionNeedsClarification = "NEEDS_CLARIFICATION"
	ResolutionUnresolved         = "UNRESOLVED"
)

// Action tells the caller what side effect, if any, the decision needs.
type Action string

const (
	// ActionReply is a finished assistant reply, nothing else to do.
	ActionReply Action = "reply"
	// ActionCreateTicket means contact details were captured and a
	// support ticket must be created before replying.
	ActionCreateTicket Action = "create_ticket"
)

// State is the per-session conversation state the engine reads and advances.
type State struct {
	PreferredLang         string
	LowConfCount          int
	ClarificationCount    int
	LastResolutionState   string
	IssueCategory         string
	IssueSubtype          string
	LastEscalationOffered bool
}

// NewState is the initial state of a fresh session.
func NewState(language string) State {
	return State{
		PreferredLang:       language,
		LastResolutionState: ResolutionAnswered,
	}
}

// Input is one user turn plus the context the engine needs to decide.
type Input struct {
	Message    string
	ForcedLang string // "en"/"hi" from an explicit lang hint, "" otherwise
	State      State
	History    []store.Turn

	// Context from the previous assistant turn, used when escalating.
	LastConfidence *float64
	LastSources    []store.Source
}

// Decision is the engine's verdict for one user turn.
type Decision struct {
	Action            Action
	Answer            string
	Confidence        float64
	Language          string
	Sources           []store.Source
	ResolutionState   string
	QuickReplies      []string
	Escalated         bool
	EscalationOffered bool
	ContactRequired   bool

	// Contact is set when Action is ActionCreateTicket.
	Contact classifier.Contact

	NextState State
}

func (d *Decision) ensureDefaults() {
	if d.QuickReplies == nil {
		d.QuickReplies = []string{}
	}
	if d.Sources == nil {
		d.Sources = []store.Source{}
	}
}
