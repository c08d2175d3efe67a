package inject

import (
	ierrors "github.com/vango-dev/inject/internal/errors"
)

// Sentinel errors for use with errors.Is. Returned errors carry the same
// code with call-specific detail.
var (
	ErrKindNotRegistered = ierrors.New("E001")
	ErrNoCapture         = ierrors.New("E002")
	ErrContract          = ierrors.New("E003")
	ErrNilWriter         = ierrors.New("E004")
	ErrInvalidPattern    = ierrors.New("E005")
	ErrEmptyKey          = ierrors.New("E010")
	ErrTypeMismatch      = ierrors.New("E011")
	ErrScriptTag         = ierrors.New("E012")
	ErrUnsupportedValue  = ierrors.New("E013")
	ErrUnmatchedContent  = ierrors.New("E020")
	ErrClosed            = ierrors.New("E021")
)
