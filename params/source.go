package params

// Source indicates where a parameter value came from.
type Source string

// Parameter source constants.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceFile indicates the value came from a parameter file.
	SourceFile Source = "file"

	// SourceEnv indicates the value came from an environment variable.
	SourceEnv Source = "env"

	// SourceOverride indicates the value was set programmatically.
	SourceOverride Source = "override"
)
