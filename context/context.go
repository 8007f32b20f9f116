package context

import (
	"context"

	"github.com/mindsetlab/bciflow/acquisition"
	"github.com/mindsetlab/bciflow/display"
	"github.com/mindsetlab/bciflow/params"
	"github.com/mindsetlab/bciflow/session"
)

// =============================================================================
// Context Injection Helpers
// =============================================================================
// These helpers allow bciflow services to be injected into context.Context
// for use by task implementations and wrappers.

// serviceContextKey is a private type for context keys to avoid collisions
type serviceContextKey string

// Context keys for bciflow services
const (
	daqServiceKey     serviceContextKey = "bciflow.daq"
	displayServiceKey serviceContextKey = "bciflow.display"
	paramsServiceKey  serviceContextKey = "bciflow.params"
	storeServiceKey   serviceContextKey = "bciflow.store"
)

// WithDAQ adds an acquisition client to the context
func WithDAQ(ctx context.Context, client *acquisition.Client) context.Context {
	return context.WithValue(ctx, daqServiceKey, client)
}

// DAQ extracts the acquisition client from context
func DAQ(ctx context.Context) *acquisition.Client {
	if client, ok := ctx.Value(daqServiceKey).(*acquisition.Client); ok {
		return client
	}
	return nil
}

// MustDAQ extracts the acquisition client or panics
func MustDAQ(ctx context.Context) *acquisition.Client {
	client := DAQ(ctx)
	if client == nil {
		panic("bciflow/context: acquisition.Client not found in context")
	}
	return client
}

// WithDisplay adds a display to the context
func WithDisplay(ctx context.Context, d display.Display) context.Context {
	return context.WithValue(ctx, displayServiceKey, d)
}

// Display extracts the display from context
func Display(ctx context.Context) display.Display {
	if d, ok := ctx.Value(displayServiceKey).(display.Display); ok {
		return d
	}
	return nil
}

// MustDisplay extracts the display or panics
func MustDisplay(ctx context.Context) display.Display {
	d := Display(ctx)
	if d == nil {
		panic("bciflow/context: display.Display not found in context")
	}
	return d
}

// WithParams adds resolved parameters to the context
func WithParams(ctx context.Context, p params.Params) context.Context {
	return context.WithValue(ctx, paramsServiceKey, p)
}

// Params extracts parameters from context.
// Returns nil if not set.
func Params(ctx context.Context) params.Params {
	if p, ok := ctx.Value(paramsServiceKey).(params.Params); ok {
		return p
	}
	return nil
}

// MustParams extracts parameters or panics
func MustParams(ctx context.Context) params.Params {
	p := Params(ctx)
	if p == nil {
		panic("bciflow/context: params.Params not found in context")
	}
	return p
}

// WithStore adds a session store to the context
func WithStore(ctx context.Context, store *session.Store) context.Context {
	return context.WithValue(ctx, storeServiceKey, store)
}

// Store extracts the session store from context
func Store(ctx context.Context) *session.Store {
	if store, ok := ctx.Value(storeServiceKey).(*session.Store); ok {
		return store
	}
	return nil
}

// MustStore extracts the session store or panics
func MustStore(ctx context.Context) *session.Store {
	store := Store(ctx)
	if store == nil {
		panic("bciflow/context: session.Store not found in context")
	}
	return store
}
