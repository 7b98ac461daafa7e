package pdf

import "fmt"

// Stage names the step of a render that failed
type Stage string

// Render stages
const (
	StageLaunch Stage = "launch"
	StageLoad   Stage = "load"
	StagePrint  Stage = "print"
)

// RenderFailedError is returned for every failure of RenderPDF
type RenderFailedError struct {
	Stage   Stage
	Message string
	Cause   error
}

func (e *RenderFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf render failed (%s): %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf render failed (%s): %s", e.Stage, e.Message)
}

func (e *RenderFailedError) Unwrap() error {
	return e.Cause
}
