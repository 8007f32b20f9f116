// Package params loads and resolves experiment parameters.
//
// Parameters are an opaque mapping from option name to value as far as the
// dispatcher is concerned; task implementations own the schema. Each entry
// carries a declared type so values read from a file can be cast on access:
//
//	p, err := params.Load("parameters.json")
//	seqLen, err := p.Int("stim_length")
//
// Files may be JSON (the classic parameters.json layout, one object per
// option with value/section/type fields) or YAML (flat key: value pairs),
// chosen by extension.
//
// Resolver merges defaults, a parameter file, and BCIFLOW_* environment
// variables, tracking the source of every value.
package params
