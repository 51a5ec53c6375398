package apperr

import (
	"github.com/pkg/errors"
)

// HandleAppErr runs callbacks with the outermost AppError found in err's
// chain. Errors that carry no AppError are ignored.
func HandleAppErr(err error, callback ...func(err AppError)) {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return
	}
	for _, cb := range callback {
		cb(appErr)
	}
}

// Code returns the code of the AppError in err's chain, or 0.
func Code(err error) int {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}
	return 0
}
