package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sentinelharness/model"
)

func TestDefaultSuite(t *testing.T) {
	cases := DefaultSuite()
	if len(cases) != 9 {
		t.Fatalf("default suite has %d cases, want 9", len(cases))
	}

	// Ordering is fixed: cheapest cases first.
	if cases[0].Kind != model.CasePrebuiltImage || cases[0].Image != "hello-world" {
		t.Errorf("case 1 = %+v, want hello-world image case", cases[0])
	}
	if cases[1].Kind != model.CaseCompiledBinary || cases[1].Binary != "hello_world" {
		t.Errorf("case 2 = %+v, want hello_world binary case", cases[1])
	}
	if cases[2].Binary != "echo" || !strings.Contains(cases[2].Command, "the love you take") {
		t.Errorf("case 3 = %+v, want echo binary with lyric argument", cases[2])
	}
	if last := cases[len(cases)-1]; last.Kind != model.CaseInterpretedProgram || last.Interpreter != model.LangRuby {
		t.Errorf("last case = %+v, want ruby interpreted case", last)
	}
}

func writeSuiteFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write suite file: %v", err)
	}
	return path
}

func TestLoadSuite(t *testing.T) {
	t.Run("valid suite", func(t *testing.T) {
		path := writeSuiteFile(t, `
cases:
  - image: hello-world
    command: /hello
  - binary: echo
    command: /echo hi
  - interpreter: ruby
    program: hello
`)
		cases, err := LoadSuite(path)
		if err != nil {
			t.Fatalf("LoadSuite failed: %v", err)
		}
		if len(cases) != 3 {
			t.Fatalf("got %d cases, want 3", len(cases))
		}
		if cases[0].Kind != model.CasePrebuiltImage {
			t.Errorf("case 1 kind = %v", cases[0].Kind)
		}
		if cases[1].Kind != model.CaseCompiledBinary || cases[1].Command != "/echo hi" {
			t.Errorf("case 2 = %+v", cases[1])
		}
		if cases[2].Kind != model.CaseInterpretedProgram || cases[2].Interpreter != model.LangRuby {
			t.Errorf("case 3 = %+v", cases[2])
		}
	})

	t.Run("unknown interpreter is rejected", func(t *testing.T) {
		path := writeSuiteFile(t, `
cases:
  - interpreter: perl
    program: hello
`)
		if _, err := LoadSuite(path); err == nil {
			t.Fatal("expected error for unsupported interpreter")
		}
	})

	t.Run("ambiguous variant is rejected", func(t *testing.T) {
		path := writeSuiteFile(t, `
cases:
  - image: hello-world
    binary: echo
    command: /hello
`)
		if _, err := LoadSuite(path); err == nil {
			t.Fatal("expected error for case setting two variants")
		}
	})

	t.Run("missing command is rejected", func(t *testing.T) {
		path := writeSuiteFile(t, `
cases:
  - binary: echo
`)
		if _, err := LoadSuite(path); err == nil {
			t.Fatal("expected error for binary case without command")
		}
	})

	t.Run("missing program is rejected", func(t *testing.T) {
		path := writeSuiteFile(t, `
cases:
  - interpreter: python
`)
		if _, err := LoadSuite(path); err == nil {
			t.Fatal("expected error for interpreter case without program")
		}
	})

	t.Run("empty suite is rejected", func(t *testing.T) {
		path := writeSuiteFile(t, `cases: []`)
		if _, err := LoadSuite(path); err == nil {
			t.Fatal("expected error for empty suite")
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		path := writeSuiteFile(t, `cases: [yaml: syntax`)
		if _, err := LoadSuite(path); err == nil {
			t.Fatal("expected error for invalid yaml")
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		if _, err := LoadSuite("/nonexistent/suite.yaml"); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
