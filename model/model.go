package model

import (
	"fmt"
	"time"
)

// RuntimeSelector identifies which container engine backend executes a run.
type RuntimeSelector string

const (
	// RuntimeCandidate is the sandboxed runtime under test, selected by
	// passing its runtime name to the container-run call.
	RuntimeCandidate RuntimeSelector = "candidate"
	// RuntimeReference is the platform's default runtime (runc), used as
	// ground truth for output equivalence.
	RuntimeReference RuntimeSelector = "reference"
)

// Language is a closed enumeration of supported interpreters. New
// interpreters are added by extending this enum and its switch cases,
// not by constructing ad hoc name/extension pairs.
type Language int

const (
	LangPython Language = iota
	LangRuby
)

// Name returns the interpreter binary name, which doubles as the
// language tag in test image names (sentinel-<name>-test:debug).
func (l Language) Name() string {
	switch l {
	case LangPython:
		return "python"
	case LangRuby:
		return "ruby"
	default:
		return "unknown"
	}
}

// Ext returns the source file extension for the language.
func (l Language) Ext() string {
	switch l {
	case LangPython:
		return "py"
	case LangRuby:
		return "rb"
	default:
		return ""
	}
}

// ParseLanguage maps a language tag to its enum value.
func ParseLanguage(name string) (Language, error) {
	switch name {
	case "python":
		return LangPython, nil
	case "ruby":
		return LangRuby, nil
	default:
		return 0, fmt.Errorf("unsupported interpreter: %s", name)
	}
}

// CaseKind tags the TestCase variants.
type CaseKind int

const (
	// CasePrebuiltImage runs a literal command in an image that already
	// exists in the platform store.
	CasePrebuiltImage CaseKind = iota
	// CaseCompiledBinary compiles a C fixture, packages it into a fresh
	// image on top of the base image, and runs it.
	CaseCompiledBinary
	// CaseInterpretedProgram runs an interpreter against a program baked
	// into a prebuilt sentinel-<lang>-test:debug image.
	CaseInterpretedProgram
)

// TestCase is a tagged variant over the three workload shapes the suite
// knows how to drive. Exactly the fields for its Kind are meaningful.
type TestCase struct {
	Kind CaseKind

	// CasePrebuiltImage
	Image   string
	Command string

	// CaseCompiledBinary: Binary names both the fixture source
	// (<fixturedir>/<Binary>.c) and the path of the artifact inside the
	// image (/<Binary>). Command is the full invocation line.
	Binary string

	// CaseInterpretedProgram
	Interpreter Language
	Program     string
}

// Name returns the display name of the case, which for packaged binaries
// is also the generated image name.
func (tc TestCase) Name() string {
	switch tc.Kind {
	case CaseCompiledBinary:
		return "ubuntu-" + tc.Binary
	case CaseInterpretedProgram:
		return fmt.Sprintf("%s /root/%s.%s", tc.Interpreter.Name(), tc.Program, tc.Interpreter.Ext())
	default:
		return tc.Image
	}
}

// ExecutionResult is the captured stdout of one ephemeral container run.
type ExecutionResult struct {
	Runtime RuntimeSelector
	Stdout  []byte
}

// Verdict is the outcome of one test case.
type Verdict struct {
	Case     string        `json:"case"`
	Stage    string        `json:"stage"`
	Pass     bool          `json:"pass"`
	Diag     string        `json:"diag,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}
