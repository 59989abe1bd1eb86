package tool

import "fmt"

// Result is the uniform outcome of a tool execution: either Success or Failure.
// The loop feeds both variants back to the model; neither aborts a run.
type Result interface {
	// LLMContent returns the string content sent to the LLM.
	LLMContent() string
	// OK reports whether the result is a Success.
	OK() bool

	isResult()
}

// Success carries a human and model readable payload.
type Success struct {
	Payload string
}

func (s Success) LLMContent() string { return s.Payload }
func (Success) OK() bool             { return true }
func (Success) isResult()            {}

// FailureKind classifies why a tool call failed.
type FailureKind string

const (
	KindUnknownTool      FailureKind = "unknown_tool"
	KindInvalidArguments FailureKind = "invalid_arguments"
	KindOutsideRoot      FailureKind = "outside_root"
	KindNotFound         FailureKind = "not_found"
	KindWrongType        FailureKind = "wrong_type"
	KindNotScript        FailureKind = "not_script"
	KindTooLarge         FailureKind = "too_large"
	KindTimeout          FailureKind = "timeout"
	KindExecution        FailureKind = "execution_failed"
	KindIO               FailureKind = "io_error"
)

// Failure carries a classified, model-readable error message.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f Failure) LLMContent() string { return f.Message }
func (Failure) OK() bool             { return false }
func (Failure) isResult()            {}

// Succeed builds a Success from a format string.
func Succeed(format string, args ...any) Success {
	return Success{Payload: fmt.Sprintf(format, args...)}
}

// Fail builds a Failure whose message is prefixed with "Error: ".
func Fail(kind FailureKind, format string, args ...any) Failure {
	return Failure{Kind: kind, Message: "Error: " + fmt.Sprintf(format, args...)}
}
