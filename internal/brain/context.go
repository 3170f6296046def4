package brain

// DialogContext is the conversational state threaded across turns: short-term
// memory plus the most recent utterance on each side. One context is live per
// session and the Brain is its sole owner; everything here is pass-by-value so
// an uncommitted turn can never leak partial state.
type DialogContext struct {
	Memory             Memory
	LastUserUtterance  string
	LastAssistantReply string
}

func NewDialogContext(maxTurns int) DialogContext {
	return DialogContext{Memory: NewMemory(maxTurns)}
}

// WithUserUtterance folds a new user utterance into the context.
func (c DialogContext) WithUserUtterance(text string) DialogContext {
	c.Memory = c.Memory.AppendUser(text)
	c.LastUserUtterance = text
	return c
}

// WithAssistantReply folds the produced reply into the context.
func (c DialogContext) WithAssistantReply(reply string) DialogContext {
	c.Memory = c.Memory.AppendReply(reply)
	c.LastAssistantReply = reply
	return c
}
