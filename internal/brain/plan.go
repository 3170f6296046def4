package brain

// PlanKind tags the action-plan variant.
type PlanKind int

const (
	PlanNoOp PlanKind = iota
	PlanAnswerDirectly
	PlanExecuteDeviceActions
)

func (k PlanKind) String() string {
	switch k {
	case PlanAnswerDirectly:
		return "answer_directly"
	case PlanExecuteDeviceActions:
		return "execute_device_actions"
	default:
		return "noop"
	}
}

// ActionPlan is the planner's decision for one classified intent: answer with
// text, hand an ordered step sequence to the device layer, or do nothing.
// Exactly one variant is populated, selected by Kind.
type ActionPlan struct {
	Kind         PlanKind
	ResponseText string             // AnswerDirectly
	Steps        []DeviceActionStep // ExecuteDeviceActions, ordered
	Summary      string             // ExecuteDeviceActions, optional
}

func AnswerDirectly(text string) ActionPlan {
	return ActionPlan{Kind: PlanAnswerDirectly, ResponseText: text}
}

func ExecuteDeviceActions(summary string, steps ...DeviceActionStep) ActionPlan {
	return ActionPlan{Kind: PlanExecuteDeviceActions, Steps: steps, Summary: summary}
}

func NoOp() ActionPlan { return ActionPlan{Kind: PlanNoOp} }

// StepKind tags a single device action.
type StepKind int

const (
	StepOpenApp StepKind = iota
	StepSendMessage
	StepShowText
	StepNavigateToSettings
	StepSystemControl
)

func (k StepKind) String() string {
	switch k {
	case StepOpenApp:
		return "open_app"
	case StepSendMessage:
		return "send_message"
	case StepShowText:
		return "show_text"
	case StepNavigateToSettings:
		return "navigate_to_settings"
	default:
		return "system_control"
	}
}

// SystemControlType identifies the device toggle or slider a SystemControl
// step targets.
type SystemControlType int

const (
	ControlNone SystemControlType = iota
	ToggleWifi
	ToggleBluetooth
	ToggleDnd
	AdjustBrightness
	AdjustVolume
)

func (t SystemControlType) String() string {
	switch t {
	case ToggleWifi:
		return "TOGGLE_WIFI"
	case ToggleBluetooth:
		return "TOGGLE_BLUETOOTH"
	case ToggleDnd:
		return "TOGGLE_DND"
	case AdjustBrightness:
		return "ADJUST_BRIGHTNESS"
	case AdjustVolume:
		return "ADJUST_VOLUME"
	default:
		return "NONE"
	}
}

// DeviceActionStep is one atomic action planned for execution outside the
// core. The core only ever builds these; it never runs them.
type DeviceActionStep struct {
	Kind          StepKind
	AppNameHint   string            // OpenApp
	PackageName   string            // OpenApp
	RecipientHint string            // SendMessage
	Message       string            // SendMessage
	Text          string            // ShowText
	SectionHint   string            // NavigateToSettings
	Control       SystemControlType // SystemControl
	Value         string            // SystemControl, optional
}
