// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout passes and element pool activity.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetPoolHooks(&myPoolHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnPassStart(speculative)
//	// ... run the pass ...
//	observability.Layout().OnPassComplete(speculative, placed, duration)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout engine.
type LayoutHooks interface {
	// OnPassStart records the start of a layout pass.
	OnPassStart(speculative bool)

	// OnPassComplete records a finished pass and the number of attached elements.
	OnPassComplete(speculative bool, placed int, duration time.Duration)

	// OnFill records one quadrant fill.
	OnFill(quadrant string, placed int, consumedA, consumedB int)

	// OnAnchor records an anchor derivation. reason is one of
	// "fallback", "focused", "reference" or "revalidated".
	OnAnchor(index int, reason string)
}

// =============================================================================
// Pool Hooks
// =============================================================================

// PoolHooks receives events from element pools.
type PoolHooks interface {
	// OnCreate records a newly allocated element.
	OnCreate(index int)

	// OnRecycle records an element reused from the scrap list.
	OnRecycle(index int)

	// OnReturn records an element returned to the scrap list.
	OnReturn(index int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPassStart(bool)                         {}
func (NoopLayoutHooks) OnPassComplete(bool, int, time.Duration) {}
func (NoopLayoutHooks) OnFill(string, int, int, int)            {}
func (NoopLayoutHooks) OnAnchor(int, string)                    {}

// NoopPoolHooks is a no-op implementation of PoolHooks.
type NoopPoolHooks struct{}

func (NoopPoolHooks) OnCreate(int)  {}
func (NoopPoolHooks) OnRecycle(int) {}
func (NoopPoolHooks) OnReturn(int)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	poolHooks   PoolHooks   = NoopPoolHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout pass.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetPoolHooks registers custom pool hooks.
// This should be called once at application startup before any pool is used.
func SetPoolHooks(h PoolHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		poolHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Pool returns the registered pool hooks.
func Pool() PoolHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return poolHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	poolHooks = NoopPoolHooks{}
}
