// Package sysevent is a small in-process bus for control events raised by
// command handlers and consumed by the bot (e.g. a command refresh requested
// by the reload command).
package sysevent

type Type string

const (
	RefreshCommands Type = "refresh_commands"
)

type Event struct {
	Type    Type
	GuildID string
	Target  string
}

var bus = make(chan Event, 16)

// Publish enqueues an event; drops it when the bus is full rather than block
// a handler.
func Publish(evt Event) {
	select {
	case bus <- evt:
	default:
	}
}

// Events returns the receive side of the bus.
func Events() <-chan Event {
	return bus
}
