// Package bridge is the request/response boundary between the UI layer and
// the process-local services. Every operation is a named request carrying a
// JSON payload; the same dispatcher serves in-process callers and the
// loopback control server.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"quillpad/internal/logger"
)

// Handler executes one named request. Errors from collaborators are
// returned as-is; the bridge never rewraps them.
type Handler func(ctx context.Context, payload json.RawMessage) (interface{}, error)

type UnknownRequestError struct {
	Name string
}

func (e *UnknownRequestError) Error() string {
	return fmt.Sprintf("unknown request %q", e.Name)
}

type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      logger.Logger
}

func NewDispatcher(log logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		log:      log,
	}
}

// Register binds name to handler. Registering a name twice replaces the
// previous handler.
func (d *Dispatcher) Register(name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = handler
}

// Invoke runs the handler bound to name. The payload may be nil for
// requests that take no input.
func (d *Dispatcher) Invoke(ctx context.Context, name string, payload json.RawMessage) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.handlers[name]
	d.mu.RUnlock()

	if !ok {
		return nil, &UnknownRequestError{Name: name}
	}

	d.log.Debug("Bridge", "request dispatched", map[string]interface{}{"request": name})
	return handler(ctx, payload)
}

// Names returns the registered request names, for diagnostics.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	return names
}
