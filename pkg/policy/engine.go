package policy

import (
	"context"
	"log"
	"strings"

	"ai-support-chat-be/pkg/classifier"
	"ai-support-chat-be/pkg/quickreply"
	"ai-support-chat-be/pkg/rag"
	"ai-support-chat-be/pkg/store"
)

// Thresholds tune when the engine answers, clarifies or escalates.
type Thresholds struct {
	ConfThreshold    float64
	VeryLowThreshold float64
	MinTopScore      float64
	AnswerTopScore   float64
	MaxAttempts      int
	MinMessageLen    int
	TopK             int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ConfThreshold:    0.7,
		VeryLowThreshold: 0.2,
		MinTopScore:      0.35,
		AnswerTopScore:   0.45,
		MaxAttempts:      2,
		MinMessageLen:    6,
		TopK:             5,
	}
}

// Retriever runs the grounded answering pipeline for one query.
type Retriever interface {
	Query(ctx context.Context, input rag.QueryInput) (*rag.QueryResult, error)
}

// Engine decides how to respond to each user turn: canned reply,
// clarification, grounded answer, or contact collection for escalation.
type Engine struct {
	retriever  Retriever
	thresholds Thresholds
	logger     *log.Logger
}

func NewEngine(retriever Retriever, thresholds Thresholds, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		retriever:  retriever,
		thresholds: thresholds,
		logger:     logger,
	}
}

// Decide processes one user turn. It never mutates input.State; the
// advanced state is returned in Decision.NextState for the caller to persist.
func (e *Engine) Decide(ctx context.Context, sessionId string, input Input) (*Decision, error) {
	message := strings.TrimSpace(input.Message)
	state := input.State

	forced := input.ForcedLang
	hasDevanagari := classifier.DetectScript(message) == classifier.LangHI
	romanDecision := classifier.DecisionEnglish
	if forced == "" {
		romanDecision = classifier.RomanHindiDecision(message)
	}
	romanHindi := romanDecision == classifier.DecisionHindi
	ambiguousLanguage := romanDecision == classifier.DecisionAmbiguous && !hasDevanagari && state.PreferredLang == ""

	// Forced mode overrides, then Devanagari, then Roman Hindi,
	// then the session's sticky preference, then default EN.
	var language string
	switch {
	case forced != "":
		language = forced
	case hasDevanagari || romanHindi:
		language = classifier.LangHI
	case state.PreferredLang != "":
		language = state.PreferredLang
	default:
		language = classifier.LangEN
	}

	// A pending contact request takes priority over everything else.
	if state.LastResolutionState == ResolutionUnresolved {
		return e.decidePendingContact(message, language, input), nil
	}

	if choice := classifier.LanguageChoice(message); choice != "" {
		next := state
		next.LowConfCount = 0
		next.ClarificationCount = 0
		next.LastResolutionState = ResolutionAnswered
		next.LastEscalationOffered = false
		next.PreferredLang = choice
		d := &Decision{
			Action:          ActionReply,
			Answer:          LanguageAck(choice),
			Confidence:      1.0,
			Language:        choice,
			ResolutionState: ResolutionAnswered,
			NextState:       next,
		}
		d.ensureDefaults()
		return d, nil
	}

	if ambiguousLanguage {
		// Ask the user to choose instead of guessing.
		question, quickReplies := LanguagePreferencePrompt(classifier.LangEN)
		next := state
		next.LowConfCount = 0
		next.ClarificationCount = 0
		next.LastResolutionState = ResolutionNeedsClarification
		next.LastEscalationOffered = false
		d := &Decision{
			Action:          ActionReply,
			Answer:          question,
			Confidence:      0.0,
			Language:        classifier.LangEN,
			ResolutionState: ResolutionNeedsClarification,
			QuickReplies:    quickReplies,
			NextState:       next,
		}
		d.ensureDefaults()
		return d, nil
	}

	if classifier.ExplicitSupportRequest(message) {
		// Honor explicit ticket requests and move straight to contact collection.
		return e.unresolvedDecision(language, input.LastSources, state), nil
	}

	if classifier.IsClosingMessage(message) {
		return e.cannedAnswered(ClosingReply(language), language, state), nil
	}

	if classifier.IsGreeting(message) {
		return e.cannedAnswered(GreetingReply(language), language, state), nil
	}

	if classifier.IsTooShort(message, e.thresholds.MinMessageLen) {
		next := state
		next.LowConfCount = 0
		next.ClarificationCount = state.ClarificationCount + 1
		next.LastResolutionState = ResolutionNeedsClarification
		next.LastEscalationOffered = false
		next.PreferredLang = language
		d := &Decision{
			Action:          ActionReply,
			Answer:          ShortReply(language),
			Confidence:      0.0,
			Language:        language,
			ResolutionState: ResolutionNeedsClarification,
			NextState:       next,
		}
		d.ensureDefaults()
		return d, nil
	}

	next := state
	issueCategory := state.IssueCategory
	issueSubtype := state.IssueSubtype
	queryForRag := message
	skipPreClarify := false

	if quick := quickreply.Match(message); quick != nil {
		// Quick replies map to canonical queries to improve retrieval quality.
		issueCategory = quick.Category
		issueSubtype = quick.Subtype
		queryForRag = quick.Canonical
		skipPreClarify = true
		next.IssueCategory = issueCategory
		next.IssueSubtype = issueSubtype
		next.LastEscalationOffered = false
		next.PreferredLang = language
	} else if issueSubtype != "" && classifier.IsFollowup(message) {
		queryForRag = quickreply.ExpandQuery(issueSubtype, message, language, true)
		skipPreClarify = true
	} else {
		currentIntent := classifier.DetectIntent(message)
		if currentIntent != "" && issueCategory != "" && currentIntent != issueCategory {
			// Intent switch: the stored subtype belongs to the old topic.
			issueCategory = currentIntent
			issueSubtype = ""
			next.IssueCategory = currentIntent
			next.IssueSubtype = ""
			next.LastEscalationOffered = false
		}
	}

	intent := issueCategory
	if intent == "" {
		intent = classifier.DetectIntent(queryForRag)
	}
	if intent == "" {
		intent = classifier.DetectIntent(message)
	}

	if !skipPreClarify {
		// Vague intent: clarify before running retrieval at all.
		var needs bool
		needs, intent = classifier.NeedsClarification(message)
		if needs {
			if state.ClarificationCount >= e.thresholds.MaxAttempts {
				return e.unresolvedDecision(language, nil, state), nil
			}
			question := ClarifyReply(language)
			var quickReplies []string
			if intent == classifier.IntentRefund || intent == classifier.IntentPayment {
				question, quickReplies = ClarifyRefundPayment(language)
			}
			previous := state.ClarificationCount
			offered := previous >= 1
			next.LowConfCount = state.LowConfCount
			next.ClarificationCount = previous + 1
			next.LastResolutionState = ResolutionNeedsClarification
			if intent != "" {
				next.IssueCategory = intent
			}
			next.LastEscalationOffered = offered
			next.PreferredLang = language
			d := &Decision{
				Action:            ActionReply,
				Answer:            question,
				Confidence:        0.0,
				Language:          language,
				ResolutionState:   ResolutionNeedsClarification,
				QuickReplies:      quickReplies,
				EscalationOffered: offered,
				NextState:         next,
			}
			d.ensureDefaults()
			return d, nil
		}
	}

	ragLangHint := forced
	if ragLangHint == "" {
		ragLangHint = language
	}
	result, err := e.retriever.Query(ctx, rag.QueryInput{
		SessionId: sessionId,
		UserQuery: queryForRag,
		LangHint:  ragLangHint,
		TopK:      e.thresholds.TopK,
		History:   input.History,
	})
	if err != nil {
		e.logger.Printf("[POLICY] retrieval failed: %v", err)
		result = &rag.QueryResult{Language: language}
	}

	answer := result.Answer
	confidence := result.Confidence
	sources := result.Sources

	responseLang := classifier.LangEN
	switch {
	case forced != "":
		responseLang = forced
	case language == classifier.LangHI || romanHindi:
		responseLang = classifier.LangHI
	}

	answer = rag.SanitizeAnswer(answer, responseLang)

	// Weak evidence is discarded rather than shown to the user.
	topScore := 0.0
	for _, src := range sources {
		if src.Score > topScore {
			topScore = src.Score
		}
	}
	if topScore < e.thresholds.MinTopScore {
		sources = nil
	} else if len(sources) > 0 && topScore > confidence {
		confidence = topScore
	}

	if classifier.IsOffTopic(message) && issueSubtype == "" && issueCategory == "" {
		// Off-topic queries should not be answered with unrelated KB sources.
		sources = nil
		topScore = 0.0
	}

	// Strong KB evidence may answer even when self-confidence sits
	// slightly below the threshold.
	answerReady := len(sources) > 0 && topScore >= e.thresholds.AnswerTopScore
	if answerReady && confidence < e.thresholds.ConfThreshold && topScore > confidence {
		confidence = topScore
	}

	if answerReady {
		next.LowConfCount = 0
		next.ClarificationCount = 0
		next.LastResolutionState = ResolutionAnswered
		if intent != "" {
			next.IssueCategory = intent
		}
		next.IssueSubtype = issueSubtype
		next.LastEscalationOffered = false
		next.PreferredLang = responseLang
		d := &Decision{
			Action:          ActionReply,
			Answer:          answer,
			Confidence:      confidence,
			Language:        responseLang,
			Sources:         sources,
			ResolutionState: ResolutionAnswered,
			NextState:       next,
		}
		d.ensureDefaults()
		return d, nil
	}

	lowConfCount := state.LowConfCount + 1
	veryLow := confidence <= e.thresholds.VeryLowThreshold
	highRisk := classifier.IsHighRisk(message, intent)
	attempts := state.ClarificationCount
	if fromHistory := CountClarificationPrompts(input.History); fromHistory > attempts {
		attempts = fromHistory
	}

	// Escalate only after repeated low confidence, or high risk with no evidence.
	if (veryLow && len(sources) == 0 && highRisk) || attempts >= e.thresholds.MaxAttempts {
		return e.unresolvedDecision(responseLang, sources, state), nil
	}

	var question string
	var quickReplies []string
	switch {
	case (intent == classifier.IntentRefund || intent == classifier.IntentPayment) && issueSubtype == "":
		question, quickReplies = ClarifyRefundPayment(responseLang)
	case intent == classifier.IntentRefund || intent == classifier.IntentPayment:
		question = DetailPrompt(responseLang)
	default:
		question = ClarifyReply(responseLang)
	}

	previous := state.ClarificationCount
	offered := previous >= 1 || veryLow
	if confidence > 0.6 {
		confidence = 0.6
	}

	next.LowConfCount = lowConfCount
	next.ClarificationCount = previous + 1
	next.LastResolutionState = ResolutionNeedsClarification
	if intent != "" {
		next.IssueCategory = intent
	}
	next.IssueSubtype = issueSubtype
	next.LastEscalationOffered = offered
	next.PreferredLang = responseLang

	d := &Decision{
		Action:            ActionReply,
		Answer:            question,
		Confidence:        confidence,
		Language:          responseLang,
		ResolutionState:   ResolutionNeedsClarification,
		QuickReplies:      quickReplies,
		EscalationOffered: offered,
		NextState:         next,
	}
	d.ensureDefaults()
	return d, nil
}

// decidePendingContact handles the turn after the bot asked for contact
// details: either the ticket can be created now, or the prompt repeats.
func (e *Engine) decidePendingContact(message, language string, input Input) *Decision {
	state := input.State
	contact := classifier.ExtractContact(message)
	if contact.Email != "" || contact.Phone != "" {
		if contact.Name == "" {
			contact.Name = classifier.ExtractNameFromHistory(input.History)
		}
		normalized, err := classifier.NormalizeContact(contact.Name, contact.Email, contact.Phone)
		if err == nil {
			next := state
			next.LowConfCount = 0
			next.ClarificationCount = 0
			next.LastResolutionState = ResolutionUnresolved
			next.LastEscalationOffered = false
			next.PreferredLang = language
			d := &Decision{
				Action:          ActionCreateTicket,
				Confidence:      0.0,
				Language:        language,
				Sources:         input.LastSources,
				ResolutionState: ResolutionUnresolved,
				Escalated:       true,
				Contact:         normalized,
			}
			d.NextState = next
			d.ensureDefaults()
			return d
		}
		e.logger.Printf("[POLICY] invalid contact details: %v", err)
	}

	// No usable contact: prompt again and skip retrieval entirely.
	d := &Decision{
		Action:            ActionReply,
		Answer:            ContactRequestPrompt(language),
		Confidence:        0.0,
		Language:          language,
		ResolutionState:   ResolutionUnresolved,
		EscalationOffered: true,
		ContactRequired:   true,
		NextState:         state,
	}
	d.ensureDefaults()
	return d
}

func (e *Engine) cannedAnswered(answer, language string, state State) *Decision {
	next := state
	next.LowConfCount = 0
	next.ClarificationCount = 0
	next.LastResolutionState = ResolutionAnswered
	next.LastEscalationOffered = false
	next.PreferredLang = language
	d := &Decision{
		Action:          ActionReply,
		Answer:          answer,
		Confidence:      1.0,
		Language:        language,
		ResolutionState: ResolutionAnswered,
		NextState:       next,
	}
	d.ensureDefaults()
	return d
}

func (e *Engine) unresolvedDecision(language string, sources []store.Source, state State) *Decision {
	next := state
	next.LowConfCount = 0
	next.ClarificationCount = 0
	next.LastResolutionState = ResolutionUnresolved
	next.LastEscalationOffered = false
	next.PreferredLang = language
	d := &Decision{
		Action:          ActionReply,
		Answer:          ContactRequestPrompt(language),
		Confidence:      0.0,
		Language:        language,
		Sources:         sources,
		ResolutionState: ResolutionUnresolved,
		ContactRequired: true,
		NextState:       next,
	}
	d.ensureDefaults()
	return d
}
