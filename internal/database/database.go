// Package database turns database module files into a set of connected,
// shared handles. Each module file declares one named section in keyed mode
// ({"store": {"driver": "datastore", ...}}); the driver name selects a factory
// registered at compile time. Handles that implement Connector get their
// Connect hook invoked once at startup.
package database

import (
	"context"
	"fmt"
	"log"

	"server-herald/pkg/loader"
)

// Spec is the payload of a database module file.
type Spec struct {
	Driver string `json:"driver"`
	Path   string `json:"path,omitempty"`
	DSN    string `json:"dsn,omitempty"`
}

// Handle is an opaque connected resource. Commands type-assert to the
// concrete store they declared in their databases list.
type Handle interface {
	Name() string
	Driver() string
	Close() error
}

// Connector is the optional lifecycle hook: handles that implement it are
// connected once at startup. Handles without it are usable as constructed.
type Connector interface {
	Connect(ctx context.Context) error
}

// Factory builds an unconnected handle from a module spec.
type Factory func(name string, spec Spec) (Handle, error)

var drivers = map[string]Factory{}

// RegisterDriver registers a driver factory. Usually called from init().
func RegisterDriver(name string, f Factory) {
	drivers[name] = f
}

// Handles is the shared database handle set, keyed by section name. It is
// populated once at startup and read-mostly afterwards; handlers that mutate
// shared state must coordinate themselves.
type Handles map[string]Handle

// Narrow returns a new set containing only the named sections. Sections not
// present in the receiver are omitted, not an error.
func (h Handles) Narrow(sections []string) Handles {
	out := make(Handles, len(sections))
	for _, name := range sections {
		if handle, ok := h[name]; ok {
			out[name] = handle
		}
	}
	return out
}

// Close closes every handle, logging failures.
func (h Handles) Close() {
	for name, handle := range h {
		if err := handle.Close(); err != nil {
			log.Printf("[ERR] Failed to close database %s: %v", name, err)
		}
	}
}

// Open discovers database modules under dir and builds a handle per declared
// section. When sections is non-empty, only the listed sections are
// activated. Unknown drivers and factory failures are logged and skipped.
func Open(dir string, sections []string) Handles {
	active := make(map[string]bool, len(sections))
	for _, s := range sections {
		active[s] = true
	}

	handles := make(Handles)
	for group, exports := range loader.LoadKeyed[Spec](dir, loader.DefaultExt) {
		for name, spec := range exports {
			if len(active) > 0 && !active[name] {
				log.Printf("[INFO] Database section %s not activated, skipping", name)
				continue
			}
			factory, ok := drivers[spec.Driver]
			if !ok {
				log.Printf("[ERR] Unknown database driver %q for section %s (group %s)", spec.Driver, name, group)
				continue
			}
			handle, err := factory(name, spec)
			if err != nil {
				log.Printf("[ERR] Failed to build database %s: %v", name, err)
				continue
			}
			handles[name] = handle
		}
	}
	return handles
}

// Connect invokes the Connect hook on every handle that has one. A failed
// connect drops the handle from the set so commands never see a half-open
// resource.
func Connect(ctx context.Context, h Handles) {
	for name, handle := range h {
		c, ok := handle.(Connector)
		if !ok {
			continue
		}
		if err := c.Connect(ctx); err != nil {
			log.Printf("[ERR] Failed to connect database %s: %v", name, err)
			delete(h, name)
			continue
		}
		log.Printf("[INFO] Database %s connected (%s)", name, handle.Driver())
	}
}

// Get returns the named handle or an error naming the missing section.
func (h Handles) Get(name string) (Handle, error) {
	handle, ok := h[name]
	if !ok {
		return nil, fmt.Errorf("database section %q is not available", name)
	}
	return handle, nil
}
