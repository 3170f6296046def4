package controller

import "astra-core/internal/brain"

// The controller's outward-facing ports. All of them model subsystems the
// core does not own: speech playback, device-action execution, and the visual
// mood store. Implementations must not block for long; they run on the
// controller's worker goroutine.

// ReplySink receives the final text of every direct reply, exactly once.
type ReplySink interface {
	Speak(text string)
}

// ActionSink receives the ordered step sequence of every action-required
// result. The core plans steps; it never executes them.
type ActionSink interface {
	Execute(steps []brain.DeviceActionStep, summary string)
}

// HintSink receives presentation hints as the turn lifecycle advances.
type HintSink interface {
	Present(hint brain.PresentationHint)
}

type ReplySinkFunc func(text string)

func (f ReplySinkFunc) Speak(text string) { f(text) }

type ActionSinkFunc func(steps []brain.DeviceActionStep, summary string)

func (f ActionSinkFunc) Execute(steps []brain.DeviceActionStep, summary string) { f(steps, summary) }

type HintSinkFunc func(hint brain.PresentationHint)

func (f HintSinkFunc) Present(hint brain.PresentationHint) { f(hint) }
