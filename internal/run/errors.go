package run

import "fmt"

// Stage identifies where in the pipeline a run failed.
type Stage string

const (
	StageInit      Stage = "init"
	StagePrompt    Stage = "prompt"
	StageRequest   Stage = "request"
	StageNormalize Stage = "normalize"
	StagePersist   Stage = "persist"
)

// StageError tags a stage failure so the top-level handler can report which
// step broke. Every stage error is terminal for the invocation.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
