package engine

import (
	"context"
	"fmt"

	"sentinelharness/model"
)

// RunError reports that one of the two engines failed to execute a
// container run, naming the runtime at fault for diagnosis.
type RunError struct {
	Runtime model.RuntimeSelector
	Image   string
	Command []string
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s failed to run %s with command %v: %v", e.Runtime, e.Image, e.Command, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// RunBoth executes command in image to completion under the candidate
// runtime and then under the platform default, returning both captured
// stdouts. Runs are strictly sequential: the reference run starts only
// after the candidate's container has been removed. A failure of either
// run short-circuits with a RunError naming the runtime; no comparison
// input is produced in that case.
func RunBoth(ctx context.Context, c Client, image string, command []string, candidateRuntime string) (candidate, reference []byte, err error) {
	candidate, err = c.Run(ctx, image, command, candidateRuntime)
	if err != nil {
		return nil, nil, &RunError{Runtime: model.RuntimeCandidate, Image: image, Command: command, Err: err}
	}

	reference, err = c.Run(ctx, image, command, "")
	if err != nil {
		return nil, nil, &RunError{Runtime: model.RuntimeReference, Image: image, Command: command, Err: err}
	}
	return candidate, reference, nil
}
