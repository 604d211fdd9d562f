// Package event defines the event module contract: a module file names a
// registered handler, and the folder it lives under names the client event it
// reacts to. Handlers for one event run sequentially in discovery order.
package event

import (
	"log"

	"server-herald/internal/database"
	"server-herald/pkg/loader"

	"github.com/bwmarrin/discordgo"
)

// Module is the payload of an event module file.
type Module struct {
	Handler string `json:"handler"`
}

// HandlerFunc is an event callback. evt is the client's event payload
// (*discordgo.Ready, *discordgo.MessageCreate, ...); handlers type-assert to
// the event they were registered for.
type HandlerFunc func(s *discordgo.Session, evt any, db database.Handles) error

var handlers = map[string]HandlerFunc{}

// RegisterHandler binds a callback to a handler name. Usually called from init().
func RegisterHandler(name string, fn HandlerFunc) {
	handlers[name] = fn
}

// Handler returns the callback registered under name.
func Handler(name string) (HandlerFunc, bool) {
	fn, ok := handlers[name]
	return fn, ok
}

// HandlerCounts returns how many handler modules were discovered per event
// name, including events whose folder is empty.
func HandlerCounts(dir string) map[string]int {
	counts := make(map[string]int)
	for _, g := range loader.Groups(dir, loader.DefaultExt) {
		counts[g.Name] = len(g.Files)
	}
	return counts
}

// LoadAll re-scans dir and resolves every event module to its callback,
// keyed by event name, in discovery order. Modules naming an unregistered
// handler are logged and skipped.
func LoadAll(dir string) map[string][]HandlerFunc {
	out := make(map[string][]HandlerFunc)
	for _, group := range loader.LoadOrdered[Module](dir, loader.DefaultExt) {
		for _, m := range group.Items {
			fn, ok := handlers[m.Handler]
			if !ok {
				log.Printf("[ERR] Event %s references unknown handler %q, skipping", group.Group, m.Handler)
				continue
			}
			out[group.Group] = append(out[group.Group], fn)
		}
	}
	return out
}
