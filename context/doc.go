// Package context provides dependency injection via context.Context for
// bciflow services: the acquisition client, the display, resolved
// parameters, and the session store.
//
// Each service has a With*/Get/Must* trio. The notify package carries its
// own injection helpers for Notifier.
package context
