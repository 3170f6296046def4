package brain

// Phase is the high-level assistant lifecycle visible to a presentation layer.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseListening
	PhaseThinking
	PhaseSpeaking
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseListening:
		return "listening"
	case PhaseThinking:
		return "thinking"
	case PhaseSpeaking:
		return "speaking"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Emotion colors a phase for presentation. The core never renders; it only
// names the mood.
type Emotion int

const (
	EmotionNeutral Emotion = iota
	EmotionCurious
	EmotionHappy
	EmotionConcerned
	EmotionFocused
)

func (e Emotion) String() string {
	switch e {
	case EmotionCurious:
		return "curious"
	case EmotionHappy:
		return "happy"
	case EmotionConcerned:
		return "concerned"
	case EmotionFocused:
		return "focused"
	default:
		return "neutral"
	}
}

// PresentationHint is a plain value handed to the external visual-state sink.
type PresentationHint struct {
	Phase   Phase
	Emotion Emotion
	Reason  string // populated for PhaseError
}

// HintForSubmit is emitted when a turn enters the pipeline.
func HintForSubmit() PresentationHint {
	return PresentationHint{Phase: PhaseThinking, Emotion: EmotionFocused}
}

// HintForResult maps a turn result to its presentation hint.
func HintForResult(result TurnResult) PresentationHint {
	switch result.Kind {
	case ResultDirectReply:
		return PresentationHint{Phase: PhaseSpeaking, Emotion: EmotionHappy}
	case ResultActionRequired:
		return PresentationHint{Phase: PhaseThinking, Emotion: EmotionCurious}
	default:
		return PresentationHint{Phase: PhaseIdle, Emotion: EmotionNeutral}
	}
}

// HintForError maps a turn failure to its presentation hint.
func HintForError(err error) PresentationHint {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return PresentationHint{Phase: PhaseError, Emotion: EmotionConcerned, Reason: reason}
}
