package framegraph

import (
	"errors"
	"fmt"
)

// Base errors for the framegraph package.
var (
	// ErrBuilderConsumed is the value a Builder's declaration methods
	// panic with when called after Build has already run.
	ErrBuilderConsumed = errors.New("frame graph builder already built")

	// ErrMissingCallback's text is the Message of the *BuildError (Kind
	// BuildErrorMissingCallback) reported when a pass the graph keeps
	// (because it contributes to the final output) has no execution
	// callback. That BuildError does not wrap ErrMissingCallback, so
	// errors.Is does not match it.
	ErrMissingCallback = errors.New("kept pass has no execution callback")
)

// BuildErrorKind classifies a BuildError.
type BuildErrorKind int

const (
	// BuildErrorSelfDependency indicates a pass both reads and writes the
	// same texture in a way that would make it depend on itself.
	BuildErrorSelfDependency BuildErrorKind = iota
	// BuildErrorCycle indicates the pass dependency graph contains a
	// cycle: no valid execution order exists.
	BuildErrorCycle
	// BuildErrorMissingCallback indicates a used pass has no execution
	// callback.
	BuildErrorMissingCallback
)

// BuildError reports a structural problem discovered while compiling a
// Builder's declarations into a Plan.
type BuildError struct {
	Kind    BuildErrorKind
	Pass    string
	Chain   []string // pass names forming the offending dependency chain, if any
	Message string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if len(e.Chain) > 0 {
		return fmt.Sprintf("pass %q: %s (%v)", e.Pass, e.Message, e.Chain)
	}
	return fmt.Sprintf("pass %q: %s", e.Pass, e.Message)
}

func newSelfDependencyError(pass string) *BuildError {
	return &BuildError{Kind: BuildErrorSelfDependency, Pass: pass, Message: "depends on itself"}
}

func newCycleError(chain []string) *BuildError {
	return &BuildError{
		Kind:    BuildErrorCycle,
		Pass:    chain[0],
		Chain:   chain,
		Message: "participates in a dependency cycle",
	}
}

func newMissingCallbackError(pass string) *BuildError {
	return &BuildError{Kind: BuildErrorMissingCallback, Pass: pass, Message: ErrMissingCallback.Error()}
}

// IsBuildError returns true if err is a *BuildError.
func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}
