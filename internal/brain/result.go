package brain

// ResultKind tags the turn-result variant.
type ResultKind int

const (
	ResultIgnored ResultKind = iota
	ResultDirectReply
	ResultActionRequired
)

func (k ResultKind) String() string {
	switch k {
	case ResultDirectReply:
		return "direct_reply"
	case ResultActionRequired:
		return "action_required"
	default:
		return "ignored"
	}
}

// TurnResult is the structured outcome of one turn. Intent and Plan are
// per-turn values, discarded after delivery; only the dialog context outlives
// the turn.
type TurnResult struct {
	Kind   ResultKind
	Text   string // DirectReply: final reply text
	Intent ClassifiedIntent
	Plan   ActionPlan
}
