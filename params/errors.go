package params

import "errors"

// Parameter errors
var (
	// ErrMissingParam indicates a required option is not present.
	ErrMissingParam = errors.New("parameter not set")

	// ErrBadValue indicates a value could not be cast to the requested type.
	ErrBadValue = errors.New("invalid parameter value")

	// ErrUnsupportedFormat indicates a parameter file extension that is
	// neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported parameter file format")
)
