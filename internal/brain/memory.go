package brain

import (
	"strings"
	"time"
)

// DefaultMaxTurns bounds short-term conversation memory.
const DefaultMaxTurns = 20

// Turn is one exchange: a user utterance and, once produced, the assistant reply.
type Turn struct {
	User      string
	Assistant string
	CreatedAt time.Time
}

// Memory is a bounded FIFO of dialog turns. It is a value type: every mutation
// returns a new Memory, so snapshots handed to observers can never grow past
// the bound behind their back.
type Memory struct {
	turns    []Turn
	maxTurns int
}

func NewMemory(maxTurns int) Memory {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return Memory{maxTurns: maxTurns}
}

// AppendUser records a new user utterance as a fresh turn.
func (m Memory) AppendUser(text string) Memory {
	out := m.clone()
	out.turns = append(out.turns, Turn{User: text, CreatedAt: time.Now()})
	return out.trim()
}

// AppendReply amends the newest turn with the assistant reply. If no turn
// exists yet (a reply before any user input), a reply-only turn is created.
func (m Memory) AppendReply(text string) Memory {
	out := m.clone()
	if len(out.turns) == 0 {
		out.turns = append(out.turns, Turn{Assistant: text, CreatedAt: time.Now()})
		return out.trim()
	}
	out.turns[len(out.turns)-1].Assistant = text
	return out.trim()
}

func (m Memory) Len() int { return len(m.turns) }

func (m Memory) MaxTurns() int {
	if m.maxTurns <= 0 {
		return DefaultMaxTurns
	}
	return m.maxTurns
}

// Snapshot returns the turns oldest-first. The slice is a copy.
func (m Memory) Snapshot() []Turn {
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// LastN returns up to n newest turns, oldest-first.
func (m Memory) LastN(n int) []Turn {
	if n <= 0 || len(m.turns) == 0 {
		return nil
	}
	if n > len(m.turns) {
		n = len(m.turns)
	}
	out := make([]Turn, n)
	copy(out, m.turns[len(m.turns)-n:])
	return out
}

// Render writes the newest turns as "User:"/"Assistant:" lines, oldest first.
// Used for prompt context.
func (m Memory) Render(limit int) string {
	turns := m.LastN(limit)
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range turns {
		if strings.TrimSpace(t.User) != "" {
			b.WriteString("User: ")
			b.WriteString(clipForContext(t.User, 500))
			b.WriteString("\n")
		}
		if strings.TrimSpace(t.Assistant) != "" {
			b.WriteString("Assistant: ")
			b.WriteString(clipForContext(t.Assistant, 500))
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func (m Memory) clone() Memory {
	out := Memory{maxTurns: m.MaxTurns()}
	if len(m.turns) > 0 {
		out.turns = make([]Turn, len(m.turns))
		copy(out.turns, m.turns)
	}
	return out
}

func (m Memory) trim() Memory {
	for len(m.turns) > m.MaxTurns() {
		m.turns = m.turns[1:]
	}
	return m
}

func clipForContext(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
