package metrics

import "errors"

var (
	ErrRegistererMissing = errors.New("prometheus registerer is missing.")
)
