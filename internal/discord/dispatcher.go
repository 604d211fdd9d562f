package discord

import (
	"log"
	"sort"

	"server-herald/internal/event"

	"github.com/bwmarrin/discordgo"
)

const (
	// eventReady is the bootstrap event: subscribed once, triggers the
	// command synchronizer before user handlers.
	eventReady = "ready"
	// eventInteractionCreate carries command invocations: always
	// subscribed, even with zero user handlers, because the command
	// executor is attached to it.
	eventInteractionCreate = "interactionCreate"
)

// subscription is one planned client subscription.
type subscription struct {
	Event string
	Once  bool
}

// planSubscriptions decides which discovered event names get a client
// subscription. Events with zero handler modules are skipped, except the
// command-invocation event, which is always included. The bootstrap event is
// a run-once subscription.
func planSubscriptions(counts map[string]int) []subscription {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var subs []subscription
	seenInteraction := false
	for _, name := range names {
		if name == eventInteractionCreate {
			seenInteraction = true
		} else if counts[name] == 0 {
			continue
		}
		subs = append(subs, subscription{Event: name, Once: name == eventReady})
	}
	if !seenInteraction {
		subs = append(subs, subscription{Event: eventInteractionCreate})
	}
	return subs
}

// binders maps an event name to the typed discordgo registration for it.
var binders = map[string]func(b *Bot, once bool){
	eventReady: func(b *Bot, once bool) {
		b.subscribe(func(s *discordgo.Session, r *discordgo.Ready) {
			b.onReady(s, r)
		}, once)
	},
	eventInteractionCreate: func(b *Bot, once bool) {
		b.subscribe(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			b.runCommand(s, i)
			b.fireEvent(eventInteractionCreate, s, i)
		}, once)
	},
	"messageCreate": func(b *Bot, once bool) {
		b.subscribe(func(s *discordgo.Session, m *discordgo.MessageCreate) {
			b.fireEvent("messageCreate", s, m)
		}, once)
	},
	"messageReactionAdd": func(b *Bot, once bool) {
		b.subscribe(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
			b.fireEvent("messageReactionAdd", s, r)
		}, once)
	},
	"guildCreate": func(b *Bot, once bool) {
		b.subscribe(func(s *discordgo.Session, g *discordgo.GuildCreate) {
			b.fireEvent("guildCreate", s, g)
		}, once)
	},
	"guildMemberAdd": func(b *Bot, once bool) {
		b.subscribe(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
			b.fireEvent("guildMemberAdd", s, m)
		}, once)
	},
}

func (b *Bot) subscribe(handler any, once bool) {
	if once {
		b.dg.AddHandlerOnce(handler)
	} else {
		b.dg.AddHandler(handler)
	}
}

// registerSubscriptions scans the events directory and registers one client
// subscription per discovered event name. A failure to set up one event does
// not prevent the others.
func (b *Bot) registerSubscriptions() {
	counts := event.HandlerCounts(b.cfg.EventsPath)
	for _, sub := range planSubscriptions(counts) {
		bind, ok := binders[sub.Event]
		if !ok {
			log.Printf("[ERR] Unsupported event %q in %s, skipping", sub.Event, b.cfg.EventsPath)
			continue
		}
		bind(b, sub.Once)
		log.Printf("[INFO] Subscribed to %s (%d handler module(s))", sub.Event, counts[sub.Event])
	}
	for name, n := range counts {
		if n == 0 && name != eventInteractionCreate {
			log.Printf("[INFO] No handlers for event %q, skipping", name)
		}
	}
}

// fireEvent re-scans the events directory and runs the current handlers for
// name sequentially, in discovery order. One failing handler does not stop
// the rest.
func (b *Bot) fireEvent(name string, s *discordgo.Session, evt any) {
	for _, fn := range event.LoadAll(b.cfg.EventsPath)[name] {
		if err := fn(s, evt, b.db); err != nil {
			log.Printf("[ERR] Event %s handler failed: %v", name, err)
		}
	}
}
