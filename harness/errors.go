package harness

import (
	"errors"
	"fmt"

	"sentinelharness/model"
)

// Failure kinds. Callers match with errors.Is rather than catching a
// generic platform error.
var (
	// ErrPrecondition covers failures before any container work: the
	// platform is unreachable, the prelude build failed, or a fixture
	// would not compile.
	ErrPrecondition = errors.New("precondition failed")
	// ErrPackaging covers archive injection or commit rejected by the
	// platform while building a case's image.
	ErrPackaging = errors.New("packaging failed")
	// ErrExecution covers a platform-level run error or non-zero exit
	// under either engine; outputs were never compared.
	ErrExecution = errors.New("execution failed")
	// ErrMismatch means both engines ran successfully but produced
	// different stdout.
	ErrMismatch = errors.New("output mismatch")
)

// CaseError is the failure of a single test case, carrying the kind,
// the runtime at fault for execution failures, and both outputs for
// mismatches. Any CaseError aborts the whole suite.
type CaseError struct {
	Case string
	Kind error
	// Runtime is set for ErrExecution only.
	Runtime model.RuntimeSelector
	// Candidate and Reference are set for ErrMismatch only.
	Candidate []byte
	Reference []byte
	Err       error
}

func (e *CaseError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrMismatch):
		return fmt.Sprintf("case %s: %v: candidate=%q reference=%q", e.Case, e.Kind, e.Candidate, e.Reference)
	case e.Err != nil:
		return fmt.Sprintf("case %s: %v: %v", e.Case, e.Kind, e.Err)
	default:
		return fmt.Sprintf("case %s: %v", e.Case, e.Kind)
	}
}

func (e *CaseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Stage names the suite stage a failure kind belongs to, for reporting
// and the journal.
func Stage(kind error) string {
	switch {
	case errors.Is(kind, ErrPrecondition):
		return "build"
	case errors.Is(kind, ErrPackaging):
		return "build"
	case errors.Is(kind, ErrExecution):
		return "execute"
	case errors.Is(kind, ErrMismatch):
		return "compare"
	default:
		return "unknown"
	}
}
