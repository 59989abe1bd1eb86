package conversation

import "github.com/Cyclone1070/boxed/internal/tool"

// Turn is one entry of a transcript: UserTurn, AssistantTurn or ToolTurn.
type Turn interface {
	isTurn()
}

// UserTurn holds the prompt text.
type UserTurn struct {
	Text string
}

// AssistantTurn holds one model reply. ToolCalls keeps the order the model emitted them in.
type AssistantTurn struct {
	Text      string
	ToolCalls []tool.Call
}

// ToolTurn pairs one executed call with its result.
type ToolTurn struct {
	Call   tool.Call
	Result tool.Result
}

func (UserTurn) isTurn()      {}
func (AssistantTurn) isTurn() {}
func (ToolTurn) isTurn()      {}

// clone returns a copy of t that shares no mutable state with it.
func clone(t Turn) Turn {
	switch v := t.(type) {
	case AssistantTurn:
		calls := make([]tool.Call, len(v.ToolCalls))
		for i, c := range v.ToolCalls {
			calls[i] = c.Clone()
		}
		if v.ToolCalls == nil {
			calls = nil
		}
		return AssistantTurn{Text: v.Text, ToolCalls: calls}
	case ToolTurn:
		return ToolTurn{Call: v.Call.Clone(), Result: v.Result}
	default:
		return t
	}
}
