// Package command defines the command descriptor contract and the registry of
// compiled-in callbacks. Descriptors are JSON module files loaded fresh on
// every invocation; a descriptor binds to its callback through the handler
// name it declares.
package command

import (
	"log"

	"server-herald/internal/database"
	"server-herald/pkg/loader"

	"github.com/bwmarrin/discordgo"
)

// Choice is one selectable value of an option.
type Choice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Option describes one slash-command option. Type uses the Discord option
// type codes (3 = string, 4 = integer, 6 = user, ...).
type Option struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        int      `json:"type"`
	Required    bool     `json:"required,omitempty"`
	Choices     []Choice `json:"choices,omitempty"`
}

// Descriptor is one command as declared by a module file. Identity is the
// Name field; Deleted flags the command for removal from the remote registry.
type Descriptor struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Options     []Option `json:"options,omitempty"`

	// Handler names the registered callback this descriptor binds to.
	Handler string `json:"handler"`

	DevOnly  bool `json:"devOnly,omitempty"`
	TestOnly bool `json:"testOnly,omitempty"`
	Deleted  bool `json:"deleted,omitempty"`

	UserPermissions []string `json:"permissionsRequired,omitempty"`
	BotPermissions  []string `json:"botPermissions,omitempty"`

	// Databases lists the database sections the callback needs; the
	// executor narrows the shared handle set to exactly these.
	Databases []string `json:"databases,omitempty"`
}

// LoadAll reads every command module under dir and returns the flattened
// descriptor list in discovery order. Descriptors without a name are logged
// and dropped. Duplicate names are a caller error and not checked.
func LoadAll(dir string) []*Descriptor {
	var out []*Descriptor
	for _, group := range loader.LoadOrdered[*Descriptor](dir, loader.DefaultExt) {
		for _, d := range group.Items {
			if d.Name == "" {
				log.Printf("[WARN] Command module without a name in group %q, skipping", group.Group)
				continue
			}
			out = append(out, d)
		}
	}
	return out
}

// Find returns the descriptor whose name matches exactly, first match wins.
func Find(descs []*Descriptor, name string) *Descriptor {
	for _, d := range descs {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Context is what a callback receives: the live session, the triggering
// interaction, and the (possibly narrowed) database handle set.
type Context struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	DB      database.Handles
}

// HandlerFunc is a command callback.
type HandlerFunc func(*Context) error

var handlers = map[string]HandlerFunc{}

// RegisterHandler binds a callback to a handler name. Usually called from
// init(); a later registration under the same name replaces the earlier one.
func RegisterHandler(name string, fn HandlerFunc) {
	handlers[name] = fn
}

// Handler returns the callback registered under name.
func Handler(name string) (HandlerFunc, bool) {
	fn, ok := handlers[name]
	return fn, ok
}
