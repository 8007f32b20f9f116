package params

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ResolverConfig configures parameter resolution.
type ResolverConfig struct {
	// EnvPrefix is prepended to option names for environment variable
	// lookup. For example, with EnvPrefix "BCIFLOW_", option "stim_length"
	// maps to BCIFLOW_STIM_LENGTH. Defaults to "BCIFLOW_" if empty.
	EnvPrefix string

	// ParameterFile is the path of the parameter file to load.
	// Missing files are not an error; defaults and env still apply.
	ParameterFile string

	// Defaults provides built-in values for options.
	Defaults map[string]string

	// ErrWriter is where warnings are written.
	// Defaults to os.Stderr if nil.
	ErrWriter io.Writer
}

func (c ResolverConfig) envPrefix() string {
	if c.EnvPrefix != "" {
		return c.EnvPrefix
	}
	return "BCIFLOW_"
}

// Resolver merges parameter sources into a single Params value.
// Priority (highest to lowest): overrides > env > file > defaults.
type Resolver struct {
	config ResolverConfig

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a parameter resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	r := &Resolver{config: cfg}
	if cfg.ErrWriter == nil {
		r.config.ErrWriter = os.Stderr
	}
	return r
}

// warn adds a warning and optionally prints it.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.config.ErrWriter != nil {
		fmt.Fprintf(r.config.ErrWriter, "Warning: %s\n", msg)
	}
}

// Resolved holds the merged parameters and where each value came from.
type Resolved struct {
	Params  Params
	sources map[string]Source
}

// Source returns the source of an option's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.Params.String(key), c.sources[key]
}

// Resolve builds the final parameters by merging all sources.
func (r *Resolver) Resolve() *Resolved {
	out := &Resolved{
		Params:  make(Params),
		sources: make(map[string]Source),
	}

	// 1. Apply defaults (lowest priority)
	for key, value := range r.config.Defaults {
		out.Params[key] = Entry{Value: value}
		out.sources[key] = SourceDefault
	}

	// 2. Apply parameter file
	r.applyFile(out)

	// 3. Apply environment variables
	r.applyEnv(out)

	return out
}

// ResolveWithOverrides resolves parameters and applies programmatic overrides.
func (r *Resolver) ResolveWithOverrides(overrides map[string]string) *Resolved {
	out := r.Resolve()
	for key, value := range overrides {
		if value != "" {
			entry := out.Params[key]
			entry.Value = value
			out.Params[key] = entry
			out.sources[key] = SourceOverride
		}
	}
	return out
}

func (r *Resolver) applyFile(out *Resolved) {
	if r.config.ParameterFile == "" {
		return
	}

	loaded, err := Load(r.config.ParameterFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return // File doesn't exist - not an error
		}
		r.warn(fmt.Sprintf("could not load %s: %v", r.config.ParameterFile, err))
		return
	}

	for key, entry := range loaded {
		out.Params[key] = entry
		out.sources[key] = SourceFile
	}
}

func (r *Resolver) applyEnv(out *Resolved) {
	allKeys := make(map[string]bool)
	for k := range r.config.Defaults {
		allKeys[k] = true
	}
	for k := range out.Params {
		allKeys[k] = true
	}

	for key := range allKeys {
		envKey := r.config.envPrefix() + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if value := os.Getenv(envKey); value != "" {
			entry := out.Params[key]
			entry.Value = value
			out.Params[key] = entry
			out.sources[key] = SourceEnv
		}
	}
}
