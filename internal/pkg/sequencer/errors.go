package sequencer

import (
	"errors"
	"fmt"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

var (
	// ErrEmptySequence indicates Run was called without stages.
	ErrEmptySequence = errors.New("sequence has no stages")

	// ErrNoTarget indicates a stage that needs a resource ran before any stage produced one.
	ErrNoTarget = errors.New("stage has no target resource")

	// ErrEmptyToken indicates a local stage produced no token, or PlaceOrder ran without one.
	ErrEmptyToken = errors.New("stage has no order number token")
)

// Error reports the single stage at which a sequence stopped.
// Earlier stages are not rolled back.
type Error struct {
	Sequence  string
	Stage     int // 1-based
	StageName string
	Kind      domain.ErrorKind
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: stage %d (%s) failed [%s]: %v", e.Sequence, e.Stage, e.StageName, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var serr *Error
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}
