package markup

import "errors"

// ErrNilReader is returned by Parse when given a nil reader.
var ErrNilReader = errors.New("markup: nil reader")
