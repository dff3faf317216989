package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sentinelharness/model"
)

// DefaultSuite is the built-in fixed case list, ordered to fail fast on
// the cheapest workloads before the expensive ones (image decoding, ML
// inference).
func DefaultSuite() []model.TestCase {
	return []model.TestCase{
		{Kind: model.CasePrebuiltImage, Image: "hello-world", Command: "/hello"},
		{Kind: model.CaseCompiledBinary, Binary: "hello_world", Command: "/hello_world"},
		{Kind: model.CaseCompiledBinary, Binary: "echo", Command: "/echo And in the end, the love you take is equal to the love you make"},
		{Kind: model.CaseInterpretedProgram, Interpreter: model.LangPython, Program: "hello_world"},
		{Kind: model.CaseInterpretedProgram, Interpreter: model.LangPython, Program: "gen_thumbnail_from_url"},
		{Kind: model.CaseInterpretedProgram, Interpreter: model.LangPython, Program: "cv2_decode_image"},
		{Kind: model.CaseInterpretedProgram, Interpreter: model.LangPython, Program: "edge_detection"},
		{Kind: model.CaseInterpretedProgram, Interpreter: model.LangPython, Program: "mobilenet_tflite"},
		{Kind: model.CaseInterpretedProgram, Interpreter: model.LangRuby, Program: "hello"},
	}
}

// caseEntry is one entry of a YAML suite file. Exactly one of image,
// binary or interpreter must be set; that choice selects the variant.
type caseEntry struct {
	Image       string `yaml:"image"`
	Command     string `yaml:"command"`
	Binary      string `yaml:"binary"`
	Interpreter string `yaml:"interpreter"`
	Program     string `yaml:"program"`
}

type suiteFile struct {
	Cases []caseEntry `yaml:"cases"`
}

// LoadSuite reads a declarative YAML case list. Cases run in file
// order, preserving the strict sequential, fail-fast semantics of the
// default suite.
func LoadSuite(path string) ([]model.TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var sf suiteFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", path, err)
	}
	if len(sf.Cases) == 0 {
		return nil, fmt.Errorf("suite file %s defines no cases", path)
	}

	cases := make([]model.TestCase, 0, len(sf.Cases))
	for i, entry := range sf.Cases {
		tc, err := entry.testCase()
		if err != nil {
			return nil, fmt.Errorf("suite file %s, case %d: %w", path, i+1, err)
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

func (e caseEntry) testCase() (model.TestCase, error) {
	set := 0
	for _, field := range []string{e.Image, e.Binary, e.Interpreter} {
		if field != "" {
			set++
		}
	}
	if set != 1 {
		return model.TestCase{}, fmt.Errorf("exactly one of image, binary or interpreter must be set")
	}

	switch {
	case e.Image != "":
		if e.Command == "" {
			return model.TestCase{}, fmt.Errorf("image case %s requires a command", e.Image)
		}
		return model.TestCase{Kind: model.CasePrebuiltImage, Image: e.Image, Command: e.Command}, nil
	case e.Binary != "":
		if e.Command == "" {
			return model.TestCase{}, fmt.Errorf("binary case %s requires a command", e.Binary)
		}
		return model.TestCase{Kind: model.CaseCompiledBinary, Binary: e.Binary, Command: e.Command}, nil
	default:
		lang, err := model.ParseLanguage(e.Interpreter)
		if err != nil {
			return model.TestCase{}, err
		}
		if e.Program == "" {
			return model.TestCase{}, fmt.Errorf("interpreter case %s requires a program", e.Interpreter)
		}
		return model.TestCase{Kind: model.CaseInterpretedProgram, Interpreter: lang, Program: e.Program}, nil
	}
}
