package harness

import (
	"bytes"
	"fmt"

	"sentinelharness/model"
)

// Compare checks the two captured outputs for exact byte equality. No
// normalization is applied: workloads are expected to produce
// deterministic, directly comparable stdout, so a trailing newline
// difference is a failure.
func Compare(candidate, reference []byte) model.Verdict {
	if bytes.Equal(candidate, reference) {
		return model.Verdict{Stage: "compare", Pass: true}
	}
	return model.Verdict{
		Stage: "compare",
		Pass:  false,
		Diag:  fmt.Sprintf("candidate and reference have different output: candidate=%q reference=%q", candidate, reference),
	}
}
