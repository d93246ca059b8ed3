package framework

// StepStatus is the outcome of a single scenario step.
type StepStatus int

const (
	// StepPassed means the step ran to completion without a failure.
	StepPassed StepStatus = iota
	// StepFailed means the step reported a failure; the scenario is failed from this point on.
	StepFailed
	// StepSkipped means the step was not executed because an earlier step failed.
	StepSkipped
)

func (s StepStatus) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StepResult is returned by every step implementation. The scenario runner inspects it instead of
// relying on a panic to abort the step.
type StepResult struct {
	Status StepStatus
	Reason string
}

// Passed returns a successful StepResult.
func Passed() StepResult { return StepResult{Status: StepPassed} }

// Failed returns a failed StepResult carrying the failure message.
func Failed(reason string) StepResult { return StepResult{Status: StepFailed, Reason: reason} }

// Skipped returns a StepResult for a step that was never executed.
func Skipped(reason string) StepResult { return StepResult{Status: StepSkipped, Reason: reason} }

func (r StepResult) IsFailed() bool { return r.Status == StepFailed }

func (r StepResult) String() string {
	if r.Reason == "" {
		return r.Status.String()
	}
	return r.Status.String() + ": " + r.Reason
}
