package brain

import "strings"

// ConfidenceGate is the global threshold below which any intent plans to NoOp,
// regardless of category or arguments.
const ConfidenceGate = 0.30

// RequiredArguments names the argument keys each category's plan builder
// looks for. This is the integration contract a production classifier must
// satisfy: the rule-based reference backend knowingly does not populate
// control/recipient/appName/query, so those categories degrade to NoOp under
// it. Asserted by contract tests; do not paper over the gap in the planner.
var RequiredArguments = map[IntentCategory][]string{
	IntentOpenApp:       {"appName", "target", "package"},
	IntentSendMessage:   {"recipient", "target", "text", "message"},
	IntentTranslateText: {"text", "targetLang"},
	IntentControlDevice: {"control", "value"},
	IntentSearchWeb:     {"query"},
	IntentGetWeather:    {"location"},
}

// PlanAction maps a classified intent to an action plan. Pure and
// synchronous: missing arguments and unmatched keywords are expected branches
// that resolve to NoOp, never errors.
func PlanAction(intent ClassifiedIntent) ActionPlan {
	// Gate first. A sub-threshold classification must never reach category
	// dispatch, even for categories that always succeed.
	if intent.Confidence < ConfidenceGate {
		return NoOp()
	}

	switch intent.Category {
	case IntentAskQuestion, IntentSmallTalk:
		// Placeholder text; the brain swaps in a generated reply when blank
		// or leaves the echo for the caller to replace.
		return AnswerDirectly(intent.RawText)
	case IntentOpenApp:
		return planOpenApp(intent)
	case IntentSendMessage:
		return planSendMessage(intent)
	case IntentTranslateText:
		return planTranslate(intent)
	case IntentControlDevice:
		return planControlDevice(intent)
	case IntentSearchWeb:
		return planSearchWeb(intent)
	case IntentGetWeather:
		return planGetWeather(intent)
	default:
		return NoOp()
	}
}

func planOpenApp(intent ClassifiedIntent) ActionPlan {
	// Blank hints count as absent: no unlabeled "Open app " plans.
	appName := intent.Arg("appName", "target")
	pkg := intent.Arg("package")
	if appName == "" && pkg == "" {
		return NoOp()
	}
	label := pkg
	if label == "" {
		label = appName
	}
	return ExecuteDeviceActions(
		"Open app "+label,
		DeviceActionStep{Kind: StepOpenApp, AppNameHint: appName, PackageName: pkg},
	)
}

func planSendMessage(intent ClassifiedIntent) ActionPlan {
	recipient := intent.Arg("recipient", "target")
	message := intent.Arg("text", "message")
	if recipient == "" || message == "" {
		return NoOp()
	}
	return ExecuteDeviceActions(
		"Send message to "+recipient,
		DeviceActionStep{Kind: StepSendMessage, RecipientHint: recipient, Message: message},
	)
}

func planTranslate(intent ClassifiedIntent) ActionPlan {
	text := intent.Arg("text")
	if text == "" {
		text = intent.RawText
	}
	targetLang := intent.Arg("targetLang")
	if targetLang == "" {
		targetLang = "en"
	}
	return ExecuteDeviceActions(
		"Show translation request",
		DeviceActionStep{Kind: StepShowText, Text: "Translate to " + targetLang + ":\n" + text},
	)
}

func planControlDevice(intent ClassifiedIntent) ActionPlan {
	controlKey, ok := intent.Arguments["control"]
	if !ok {
		return NoOp()
	}
	controlKey = strings.ToLower(controlKey)

	var control SystemControlType
	switch {
	case strings.Contains(controlKey, "wifi"):
		control = ToggleWifi
	case strings.Contains(controlKey, "bluetooth"):
		control = ToggleBluetooth
	case strings.Contains(controlKey, "dnd") || strings.Contains(controlKey, "do not disturb"):
		control = ToggleDnd
	case strings.Contains(controlKey, "brightness"):
		control = AdjustBrightness
	case strings.Contains(controlKey, "volume"):
		control = AdjustVolume
	default:
		return NoOp()
	}

	return ExecuteDeviceActions(
		"Control system: "+control.String(),
		DeviceActionStep{Kind: StepSystemControl, Control: control, Value: intent.Arguments["value"]},
	)
}

func planSearchWeb(intent ClassifiedIntent) ActionPlan {
	query := intent.Arg("query")
	if query == "" {
		query = intent.RawText
	}
	return ExecuteDeviceActions(
		"Search the web",
		DeviceActionStep{Kind: StepShowText, Text: "Search for: " + query},
	)
}

func planGetWeather(intent ClassifiedIntent) ActionPlan {
	location := intent.Arg("location")
	if location == "" {
		location = "current location"
	}
	return ExecuteDeviceActions(
		"Get weather",
		DeviceActionStep{Kind: StepShowText, Text: "Get weather for " + location},
	)
}
