package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"sentinelharness/config"
	"sentinelharness/engine"
	"sentinelharness/model"
)

// Recorder persists finished verdicts. Implemented by journal.DB.
type Recorder interface {
	Record(v model.Verdict) error
}

// Notifier publishes finished verdicts. Implemented by notify.Publisher.
type Notifier interface {
	Publish(v model.Verdict) error
}

// Suite drives the test cases strictly sequentially and fail-fast: the
// first failure anywhere stops the run and is returned as a *CaseError.
// Case N+1 never begins until case N has fully completed, including its
// cleanup.
type Suite struct {
	Client engine.Client
	Config config.Config
	Log    *zap.Logger

	// Journal and Notify are optional; write failures on either are
	// logged, never fatal.
	Journal Recorder
	Notify  Notifier

	// Out receives the human-readable per-case lines. Defaults to
	// os.Stdout.
	Out io.Writer

	// Compile builds one fixture binary. Nil selects gcc.
	Compile func(ctx context.Context, src, out string) error
}

var okMark = color.New(color.FgGreen, color.Bold).SprintFunc()
var failMark = color.New(color.FgRed, color.Bold).SprintFunc()

// Run executes the prelude build followed by every case in order,
// aborting on the first failure.
func (s *Suite) Run(ctx context.Context, cases []model.TestCase) error {
	if err := s.prelude(ctx); err != nil {
		return err
	}
	for _, tc := range cases {
		if err := s.runCase(ctx, tc); err != nil {
			return err
		}
	}
	return nil
}

// prelude compiles the candidate runtime from source. Its failure is a
// precondition failure: the suite aborts before any container work.
func (s *Suite) prelude(ctx context.Context) error {
	if s.Config.PreludeCmd == "" {
		return nil
	}
	fields := strings.Fields(s.Config.PreludeCmd)
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Stdout = s.out()
	cmd.Stderr = os.Stderr
	s.Log.Info("running prelude build", zap.String("command", s.Config.PreludeCmd))
	if err := cmd.Run(); err != nil {
		return &CaseError{
			Case: "prelude",
			Kind: ErrPrecondition,
			Err:  fmt.Errorf("%s failed: %w", s.Config.PreludeCmd, err),
		}
	}
	return nil
}

// runCase walks one case through Build, Execute, Compare and Report.
// Generated resources are released on every path before returning.
func (s *Suite) runCase(ctx context.Context, tc model.TestCase) error {
	name := tc.Name()
	start := time.Now()

	var image, command string
	switch tc.Kind {
	case model.CaseCompiledBinary:
		binPath := tc.Binary
		cleanupImage := ""
		defer func() {
			engine.CleanupCase(ctx, s.Client, cleanupImage, binPath, s.Log)
		}()

		src := s.Config.FixtureDir + "/" + tc.Binary + ".c"
		if err := s.compile(ctx, src, binPath); err != nil {
			return s.fail(&CaseError{Case: name, Kind: ErrPrecondition, Err: err}, start)
		}
		if err := engine.PackageArtifact(ctx, s.Client, name, s.Config.BaseImage, binPath, "/"+tc.Binary); err != nil {
			return s.fail(&CaseError{Case: name, Kind: ErrPackaging, Err: err}, start)
		}
		cleanupImage = name
		image, command = name, tc.Command

	case model.CaseInterpretedProgram:
		image = fmt.Sprintf("sentinel-%s-test:debug", tc.Interpreter.Name())
		command = fmt.Sprintf("%s /root/%s.%s", tc.Interpreter.Name(), tc.Program, tc.Interpreter.Ext())

	default:
		image, command = tc.Image, tc.Command
	}

	fmt.Fprintf(s.out(), "\nTesting %s on image %s\n", name, image)

	candidate, reference, err := engine.RunBoth(ctx, s.Client, image, strings.Fields(command), s.Config.CandidateRuntime)
	if err != nil {
		caseErr := &CaseError{Case: name, Kind: ErrExecution, Err: err}
		var runErr *engine.RunError
		if errors.As(err, &runErr) {
			caseErr.Runtime = runErr.Runtime
		}
		return s.fail(caseErr, start)
	}

	verdict := Compare(candidate, reference)
	verdict.Case = name
	verdict.Duration = time.Since(start)
	s.report(verdict)
	if !verdict.Pass {
		return &CaseError{
			Case:      name,
			Kind:      ErrMismatch,
			Candidate: candidate,
			Reference: reference,
		}
	}
	return nil
}

func (s *Suite) compile(ctx context.Context, src, out string) error {
	if s.Compile != nil {
		return s.Compile(ctx, src, out)
	}
	cmd := exec.CommandContext(ctx, "gcc", "-o", out, src)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gcc failed on %s: %v: %s", src, err, output)
	}
	return nil
}

// fail converts a case failure into its verdict, reports it and returns
// the error for the fail-fast abort.
func (s *Suite) fail(caseErr *CaseError, start time.Time) error {
	s.report(model.Verdict{
		Case:     caseErr.Case,
		Stage:    Stage(caseErr.Kind),
		Pass:     false,
		Diag:     caseErr.Error(),
		Duration: time.Since(start),
	})
	return caseErr
}

// report prints the per-case line and forwards the verdict to the
// journal and notifier when configured.
func (s *Suite) report(v model.Verdict) {
	if v.Pass {
		fmt.Fprintf(s.out(), "\t%s %s\n", okMark("OK"), v.Case)
	} else {
		fmt.Fprintf(s.out(), "\t%s %s (%s stage)\n", failMark("FAIL"), v.Case, v.Stage)
	}

	if s.Journal != nil {
		if err := s.Journal.Record(v); err != nil {
			s.Log.Warn("failed to record verdict", zap.String("case", v.Case), zap.Error(err))
		}
	}
	if s.Notify != nil {
		if err := s.Notify.Publish(v); err != nil {
			s.Log.Warn("failed to publish verdict", zap.String("case", v.Case), zap.Error(err))
		}
	}
}

func (s *Suite) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}
