package brain

import "strings"

// IntentCategory is the closed set of intents the pipeline routes on.
type IntentCategory int

const (
	IntentUnknown IntentCategory = iota
	IntentOpenApp
	IntentSendMessage
	IntentAskQuestion
	IntentTranslateText
	IntentControlDevice
	IntentSearchWeb
	IntentGetWeather
	IntentSmallTalk
)

func (c IntentCategory) String() string {
	switch c {
	case IntentOpenApp:
		return "OPEN_APP"
	case IntentSendMessage:
		return "SEND_MESSAGE"
	case IntentAskQuestion:
		return "ASK_QUESTION"
	case IntentTranslateText:
		return "TRANSLATE_TEXT"
	case IntentControlDevice:
		return "CONTROL_DEVICE"
	case IntentSearchWeb:
		return "SEARCH_WEB"
	case IntentGetWeather:
		return "GET_WEATHER"
	case IntentSmallTalk:
		return "SMALL_TALK"
	default:
		return "UNKNOWN"
	}
}

// ParseIntentCategory maps a category name back to the enum. Unrecognized
// names land on IntentUnknown, never an error: a misbehaving backend degrades
// to a no-op plan downstream.
func ParseIntentCategory(s string) IntentCategory {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OPEN_APP":
		return IntentOpenApp
	case "SEND_MESSAGE":
		return IntentSendMessage
	case "ASK_QUESTION":
		return IntentAskQuestion
	case "TRANSLATE_TEXT":
		return IntentTranslateText
	case "CONTROL_DEVICE":
		return IntentControlDevice
	case "SEARCH_WEB":
		return IntentSearchWeb
	case "GET_WEATHER":
		return IntentGetWeather
	case "SMALL_TALK":
		return IntentSmallTalk
	default:
		return IntentUnknown
	}
}

// ClassifiedIntent is the classifier's verdict for one utterance.
type ClassifiedIntent struct {
	Category   IntentCategory
	Arguments  map[string]string
	Confidence float64 // 0..1
	RawText    string
}

// Arg returns the first non-blank value among the given keys. Key lookup is
// case-sensitive.
func (ci ClassifiedIntent) Arg(keys ...string) string {
	for _, k := range keys {
		if v, ok := ci.Arguments[k]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func normalizeText(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.ReplaceAll(t, "\t", " ")
	for strings.Contains(t, "  ") {
		t = strings.ReplaceAll(t, "  ", " ")
	}
	return t
}
