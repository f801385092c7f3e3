package policy

import (
	"context"
	"strings"
	"testing"

	"ai-support-chat-be/pkg/rag"
	"ai-support-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

type fakeRetriever struct {
	result *rag.QueryResult
	err    error
	inputs []rag.QueryInput
}

func (f *fakeRetriever) Query(_ context.Context, input rag.QueryInput) (*rag.QueryResult, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	return &res, nil
}

func newTestEngine(r Retriever) *Engine {
	return NewEngine(r, DefaultThresholds(), nil)
}

func strongResult(answer string, confidence, score float64) *rag.QueryResult {
	return &rag.QueryResult{
		Answer:     answer,
		Confidence: confidence,
		Language:   "en",
		Sources: []store.Source{
			{ChunkId: "refund-policy#0", DocId: "refund-policy", Title: "Refund Policy", Score: score},
		},
		RetrievedK: 1,
	}
}

func decide(t *testing.T, e *Engine, input Input) *Decision {
	t.Helper()
	d, err := e.Decide(context.Background(), "sess-1", input)
	assert.NoError(t, err)
	return d
}

func TestDecideGreeting(t *testing.T) {
	retriever := &fakeRetriever{}
	e := newTestEngine(retriever)

	d := decide(t, e, Input{Message: "hello", State: NewState("")})
	assert.Equal(t, ActionReply, d.Action)
	assert.Equal(t, GreetingReply("en"), d.Answer)
	assert.Equal(t, 1.0, d.Confidence)
	assert.Equal(t, ResolutionAnswered, d.ResolutionState)
	assert.Empty(t, retriever.inputs, "greetings must not hit retrieval")
}

func TestDecideClosingResetsCounters(t *testing.T) {
	e := newTestEngine(&fakeRetriever{})
	state := NewState("en")
	state.LowConfCount = 2
	state.ClarificationCount = 1

	d := decide(t, e, Input{Message: "thanks, that helps", State: state})
	assert.Equal(t, ClosingReply("en"), d.Answer)
	assert.Equal(t, 0, d.NextState.LowConfCount)
	assert.Equal(t, 0, d.NextState.ClarificationCount)
	assert.Equal(t, ResolutionAnswered, d.NextState.LastResolutionState)
}

func TestDecideLanguageChoice(t *testing.T) {
	e := newTestEngine(&fakeRetriever{})

	d := decide(t, e, Input{Message: "Hindi", State: NewState("")})
	assert.Equal(t, LanguageAck("hi"), d.Answer)
	assert.Equal(t, "hi", d.Language)
	assert.Equal(t, "hi", d.NextState.PreferredLang)
}

func TestDecideAmbiguousLanguageAsksPreference(t *testing.T) {
	retriever := &fakeRetriever{}
	e := newTestEngine(retriever)

	d := decide(t, e, Input{Message: "mujhe help chahiye", State: NewState("")})
	assert.Equal(t, ResolutionNeedsClarification, d.ResolutionState)
	assert.Equal(t, []string{"English", "Hindi"}, d.QuickReplies)
	assert.Empty(t, retriever.inputs)
}

func TestDecideTooShort(t *testing.T) {
	e := newTestEngine(&fakeRetriever{})
	state := NewState("en")

	d := decide(t, e, Input{Message: "abc", State: state})
	assert.Equal(t, ShortReply("en"), d.Answer)
	assert.Equal(t, 1, d.NextState.ClarificationCount)
	assert.Equal(t, ResolutionNeedsClarification, d.ResolutionState)
}

func TestDecideExplicitSupportRequest(t *testing.T) {
	retriever := &fakeRetriever{}
	e := newTestEngine(retriever)

	d := decide(t, e, Input{Message: "i want to talk to an agent", State: NewState("en")})
	assert.Equal(t, ResolutionUnresolved, d.ResolutionState)
	assert.True(t, d.ContactRequired)
	assert.Equal(t, ContactRequestPrompt("en"), d.Answer)
	assert.Empty(t, retriever.inputs)
}

func TestDecideGroundedAnswer(t *testing.T) {
	retriever := &fakeRetriever{result: strongResult("Refunds take 5-7 business days.", 0.9, 0.8)}
	e := newTestEngine(retriever)
	state := NewState("en")
	state.LowConfCount = 1

	d := decide(t, e, Input{Message: "my refund for the cancelled show has not arrived", State: state})
	assert.Equal(t, ActionReply, d.Action)
	assert.Equal(t, "Refunds take 5-7 business days.", d.Answer)
	assert.Equal(t, ResolutionAnswered, d.ResolutionState)
	assert.Len(t, d.Sources, 1)
	assert.Equal(t, 0, d.NextState.LowConfCount)
	assert.Equal(t, 0, d.NextState.ClarificationCount)
}

func TestDecideQuickReplyUsesCanonicalQuery(t *testing.T) {
	retriever := &fakeRetriever{result: strongResult("Here is what to do.", 0.9, 0.8)}
	e := newTestEngine(retriever)

	d := decide(t, e, Input{Message: "Refund not received yet", State: NewState("en")})
	assert.Equal(t, ResolutionAnswered, d.ResolutionState)
	assert.Equal(t, "refund", d.NextState.IssueCategory)
	assert.Equal(t, "refund_not_received", d.NextState.IssueSubtype)

	assert.Len(t, retriever.inputs, 1)
	assert.Contains(t, retriever.inputs[0].UserQuery, "Refund not received yet. What is the refund timeline")
}

func TestDecideFollowupExpandsActiveSubtype(t *testing.T) {
	retriever := &fakeRetriever{result: strongResult("Usually 5-7 days.", 0.9, 0.8)}
	e := newTestEngine(retriever)
	state := NewState("en")
	state.IssueCategory = "refund"
	state.IssueSubtype = "refund_not_received"

	d := decide(t, e, Input{Message: "kab tak?", State: state})
	assert.Equal(t, ResolutionAnswered, d.ResolutionState)
	assert.Len(t, retriever.inputs, 1)
	assert.True(t, strings.HasSuffix(retriever.inputs[0].UserQuery, "kab tak?"))
	assert.Contains(t, retriever.inputs[0].UserQuery, "Refund not received yet.")
	assert.Equal(t, "refund_not_received", d.NextState.IssueSubtype)
}

func TestDecideIntentSwitchClearsSubtype(t *testing.T) {
	retriever := &fakeRetriever{result: strongResult("Booking help.", 0.9, 0.8)}
	e := newTestEngine(retriever)
	state := NewState("en")
	state.IssueCategory = "refund"
	state.IssueSubtype = "refund_not_received"

	d := decide(t, e, Input{Message: "my booking confirmation email is missing for tonight", State: state})
	assert.Equal(t, "booking", d.NextState.IssueCategory)
	assert.Equal(t, "", d.NextState.IssueSubtype)
}

func TestDecideVagueRefundAsksClarification(t *testing.T) {
	retriever := &fakeRetriever{}
	e := newTestEngine(retriever)

	d := decide(t, e, Input{Message: "refund chahiye please", ForcedLang: "en", State: NewState("en")})
	assert.Equal(t, ResolutionNeedsClarification, d.ResolutionState)
	question, labels := ClarifyRefundPayment("en")
	assert.Equal(t, question, d.Answer)
	assert.Equal(t, labels, d.QuickReplies)
	assert.Equal(t, 1, d.NextState.ClarificationCount)
	assert.False(t, d.EscalationOffered)
	assert.Empty(t, retriever.inputs, "pre-retrieval clarification must not hit retrieval")
}

func TestDecideSecondClarificationOffersEscalation(t *testing.T) {
	e := newTestEngine(&fakeRetriever{})
	state := NewState("en")
	state.ClarificationCount = 1

	d := decide(t, e, Input{Message: "refund chahiye please", ForcedLang: "en", State: state})
	assert.Equal(t, ResolutionNeedsClarification, d.ResolutionState)
	assert.True(t, d.EscalationOffered)
	assert.Equal(t, 2, d.NextState.ClarificationCount)
}

func TestDecideMaxAttemptsEscalates(t *testing.T) {
	e := newTestEngine(&fakeRetriever{})
	state := NewState("en")
	state.ClarificationCount = 2

	d := decide(t, e, Input{Message: "refund chahiye please", ForcedLang: "en", State: state})
	assert.Equal(t, ResolutionUnresolved, d.ResolutionState)
	assert.True(t, d.ContactRequired)
	assert.Equal(t, 0, d.NextState.ClarificationCount)
}

func TestDecideOffTopicSuppressesSources(t *testing.T) {
	retriever := &fakeRetriever{result: strongResult("The weather is nice.", 0.9, 0.9)}
	e := newTestEngine(retriever)

	d := decide(t, e, Input{Message: "what is the weather like today in the city", State: NewState("en")})
	assert.Equal(t, ResolutionNeedsClarification, d.ResolutionState)
	assert.Empty(t, d.Sources)
	assert.LessOrEqual(t, d.Confidence, 0.6)
}

func TestDecideWeakEvidenceClarifies(t *testing.T) {
	retriever := &fakeRetriever{result: &rag.QueryResult{
		Answer:     "Maybe this helps.",
		Confidence: 0.5,
		Language:   "en",
		Sources:    []store.Source{{ChunkId: "c", Score: 0.3}},
	}}
	e := newTestEngine(retriever)

	d := decide(t, e, Input{Message: "payment failed but money deducted", State: NewState("en")})
	assert.Equal(t, ResolutionNeedsClarification, d.ResolutionState)
	assert.Empty(t, d.Sources, "sources below the evidence floor are dropped")
	assert.Equal(t, 1, d.NextState.LowConfCount)
}

func TestDecideHighRiskNoEvidenceEscalates(t *testing.T) {
	retriever := &fakeRetriever{result: &rag.QueryResult{
		Answer:     "",
		Confidence: 0.1,
		Language:   "en",
	}}
	e := newTestEngine(retriever)

	d := decide(t, e, Input{Message: "payment failed but money deducted", State: NewState("en")})
	assert.Equal(t, ResolutionUnresolved, d.ResolutionState)
	assert.True(t, d.ContactRequired)
}

func TestDecidePendingContactCreatesTicket(t *testing.T) {
	retriever := &fakeRetriever{}
	e := newTestEngine(retriever)
	state := NewState("en")
	state.LastResolutionState = ResolutionUnresolved

	history := []store.Turn{
		{Role: store.RoleUser, Content: "my refund is stuck"},
		{Role: store.RoleAssistant, Content: ContactRequestPrompt("en")},
	}

	d := decide(t, e, Input{Message: "rahul@example.com 9876543210", State: state, History: history})
	assert.Equal(t, ActionCreateTicket, d.Action)
	assert.True(t, d.Escalated)
	assert.Equal(t, "rahul@example.com", d.Contact.Email)
	assert.Equal(t, "9876543210", d.Contact.Phone)
	assert.Empty(t, retriever.inputs)
}

func TestDecidePendingContactRepromptsWithoutContact(t *testing.T) {
	e := newTestEngine(&fakeRetriever{})
	state := NewState("en")
	state.LastResolutionState = ResolutionUnresolved

	d := decide(t, e, Input{Message: "i already told you everything", State: state})
	assert.Equal(t, ActionReply, d.Action)
	assert.True(t, d.ContactRequired)
	assert.Equal(t, ContactRequestPrompt("en"), d.Answer)
	assert.Equal(t, state, d.NextState)
}

func TestDecideRetrieverErrorStillClarifies(t *testing.T) {
	retriever := &fakeRetriever{err: context.DeadlineExceeded}
	e := newTestEngine(retriever)

	d := decide(t, e, Input{Message: "my booking confirmation email is missing for tonight", State: NewState("en")})
	assert.Equal(t, ActionReply, d.Action)
	assert.Equal(t, ResolutionNeedsClarification, d.ResolutionState)
}

func TestCountClarificationPrompts(t *testing.T) {
	question, _ := ClarifyRefundPayment("en")
	history := []store.Turn{
		{Role: store.RoleAssistant, Content: question},
		{Role: store.RoleUser, Content: "refund"},
		{Role: store.RoleAssistant, Content: DetailPrompt("en")},
		{Role: store.RoleAssistant, Content: "Refunds take 5-7 days."},
	}
	assert.Equal(t, 2, CountClarificationPrompts(history))
}
