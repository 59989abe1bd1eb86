package conversation

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Cyclone1070/boxed/internal/tool"
)

// Transcript is the append-only conversation owned by a single run.
// Turns are copied on the way in and on the way out, so callers never share
// slices or argument maps with the stored history.
type Transcript struct {
	mu    sync.RWMutex
	turns []Turn
}

// New creates an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// Append adds a turn to the end of the transcript. A nil turn is ignored.
func (t *Transcript) Append(turn Turn) {
	if turn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, clone(turn))
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Turns returns a copy of every turn in insertion order.
func (t *Transcript) Turns() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Turn, len(t.turns))
	for i, turn := range t.turns {
		out[i] = clone(turn)
	}
	return out
}

// Last returns the most recent turn, or nil for an empty transcript.
func (t *Transcript) Last() Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.turns) == 0 {
		return nil
	}
	return clone(t.turns[len(t.turns)-1])
}

type jsonTurn struct {
	Role      string      `json:"role"`
	Text      string      `json:"text,omitempty"`
	ToolCalls []tool.Call `json:"tool_calls,omitempty"`
	Call      *tool.Call  `json:"call,omitempty"`
	OK        *bool       `json:"ok,omitempty"`
	Kind      string      `json:"kind,omitempty"`
	Output    string      `json:"output,omitempty"`
}

// MarshalJSON renders the transcript as an array of role-tagged turns.
func (t *Transcript) MarshalJSON() ([]byte, error) {
	turns := t.Turns()
	out := make([]jsonTurn, 0, len(turns))
	for _, turn := range turns {
		switch v := turn.(type) {
		case UserTurn:
			out = append(out, jsonTurn{Role: "user", Text: v.Text})
		case AssistantTurn:
			out = append(out, jsonTurn{Role: "assistant", Text: v.Text, ToolCalls: v.ToolCalls})
		case ToolTurn:
			call := v.Call
			jt := jsonTurn{Role: "tool", Call: &call}
			if v.Result != nil {
				ok := v.Result.OK()
				jt.OK = &ok
				jt.Output = v.Result.LLMContent()
				if f, isFailure := v.Result.(tool.Failure); isFailure {
					jt.Kind = string(f.Kind)
				}
			}
			out = append(out, jt)
		default:
			return nil, fmt.Errorf("unknown turn type %T", turn)
		}
	}
	return json.Marshal(out)
}
