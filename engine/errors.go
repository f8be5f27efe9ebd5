package engine

import (
	"errors"
	"fmt"
)

// ErrStage matches any *StageError.
var ErrStage = errors.New("processing stage failed")

// Stage names.
const (
	StageInit            = "init"
	StageReset           = "reset"
	StageBlocks          = "paragraph styles"
	StageInlines         = "character styles"
	StageFootnotes       = "footnotes"
	StageCleanup         = "cleanup"
	StageFootnoteStyles  = "footnote styles"
	StageFootnoteEscapes = "footnote escapes"
	StageTrim            = "blank pages"
)

// StageError is a fatal failure of a whole pipeline stage. Nothing of the run
// is applied when it is returned.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (e *StageError) Is(target error) bool {
	return target == ErrStage
}
