package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is a single parameter: a string value plus metadata describing it.
// Values are kept as strings and cast on access according to Type.
type Entry struct {
	Value        string `json:"value" yaml:"value"`
	Section      string `json:"section,omitempty" yaml:"section,omitempty"`
	ReadableName string `json:"readableName,omitempty" yaml:"readableName,omitempty"`
	HelpTip      string `json:"helpTip,omitempty" yaml:"helpTip,omitempty"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty"` // str, int, float, bool
}

// Params maps option names to entries. The zero value is not usable;
// use New, Load, or a Resolver.
type Params map[string]Entry

// New creates Params from plain key/value pairs, inferring no metadata.
func New(values map[string]string) Params {
	p := make(Params, len(values))
	for k, v := range values {
		p[k] = Entry{Value: v}
	}
	return p
}

// Load reads a parameter file. JSON files use the full entry layout;
// YAML files may be flat key: value pairs or full entries.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load parameters: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var p Params
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return p, nil
	case ".yaml", ".yml":
		return parseYAML(path, data)
	}
	return nil, fmt.Errorf("load parameters: %w: %s", ErrUnsupportedFormat, path)
}

func parseYAML(path string, data []byte) (Params, error) {
	// Try full entries first, then fall back to flat scalars.
	var full map[string]Entry
	if err := yaml.Unmarshal(data, &full); err == nil && entriesPopulated(full) {
		return Params(full), nil
	}

	var flat map[string]interface{}
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	p := make(Params, len(flat))
	for k, v := range flat {
		p[k] = Entry{Value: toString(v)}
	}
	return p, nil
}

func entriesPopulated(m map[string]Entry) bool {
	for _, e := range m {
		if e.Value != "" {
			return true
		}
	}
	return false
}

// Save writes the parameters as JSON, preserving entry metadata. Sessions
// save a copy of their parameters next to the recorded data.
func Save(p Params, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("save parameters: %w", err)
	}
	return nil
}

// Has reports whether the option is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the raw value for a key, or empty string if not set.
func (p Params) String(key string) string {
	return p[key].Value
}

// Int returns the value as an integer.
func (p Params) Int(key string) (int, error) {
	e, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("%q: %w", key, ErrMissingParam)
	}
	v, err := strconv.Atoi(strings.TrimSpace(e.Value))
	if err != nil {
		return 0, fmt.Errorf("%q: %w: %q is not an int", key, ErrBadValue, e.Value)
	}
	return v, nil
}

// Float returns the value as a float64.
func (p Params) Float(key string) (float64, error) {
	e, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("%q: %w", key, ErrMissingParam)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(e.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w: %q is not a float", key, ErrBadValue, e.Value)
	}
	return v, nil
}

// Bool returns the value as a boolean. Accepts the strconv forms plus
// "yes"/"no" which appear in older parameter files.
func (p Params) Bool(key string) (bool, error) {
	e, ok := p[key]
	if !ok {
		return false, fmt.Errorf("%q: %w", key, ErrMissingParam)
	}
	switch strings.ToLower(strings.TrimSpace(e.Value)) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(e.Value))
	if err != nil {
		return false, fmt.Errorf("%q: %w: %q is not a bool", key, ErrBadValue, e.Value)
	}
	return v, nil
}

// Duration interprets the value as seconds and returns a time.Duration.
// Parameter files store presentation timings as fractional seconds.
func (p Params) Duration(key string) (time.Duration, error) {
	secs, err := p.Float(key)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// IntOr returns the value as an int, or fallback when missing or invalid.
func (p Params) IntOr(key string, fallback int) int {
	v, err := p.Int(key)
	if err != nil {
		return fallback
	}
	return v
}

// FloatOr returns the value as a float64, or fallback when missing or invalid.
func (p Params) FloatOr(key string, fallback float64) float64 {
	v, err := p.Float(key)
	if err != nil {
		return fallback
	}
	return v
}

// DurationOr returns the value in seconds, or fallback when missing or invalid.
func (p Params) DurationOr(key string, fallback time.Duration) time.Duration {
	v, err := p.Duration(key)
	if err != nil {
		return fallback
	}
	return v
}

// Clone returns a copy of the parameters.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}
