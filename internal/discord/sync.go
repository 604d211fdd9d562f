package discord

import (
	"context"
	"fmt"
	"log"
	"reflect"

	"server-herald/internal/command"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// registry is the remote command-registration transport, scoped to one guild
// (or global). Implemented over *discordgo.Session; tests supply a fake.
type registry interface {
	Fetch() ([]*discordgo.ApplicationCommand, error)
	Create(def *discordgo.ApplicationCommand) error
	Edit(id string, def *discordgo.ApplicationCommand) error
	Delete(id string) error
}

// discordRegistry is the live transport.
type discordRegistry struct {
	s       *discordgo.Session
	appID   string
	guildID string
}

func (r *discordRegistry) Fetch() ([]*discordgo.ApplicationCommand, error) {
	return r.s.ApplicationCommands(r.appID, r.guildID)
}

func (r *discordRegistry) Create(def *discordgo.ApplicationCommand) error {
	_, err := r.s.ApplicationCommandCreate(r.appID, r.guildID, def)
	return err
}

func (r *discordRegistry) Edit(id string, def *discordgo.ApplicationCommand) error {
	_, err := r.s.ApplicationCommandEdit(r.appID, r.guildID, id, def)
	return err
}

func (r *discordRegistry) Delete(id string) error {
	return r.s.ApplicationCommandDelete(r.appID, r.guildID, id)
}

// syncCommands reconciles the declared command set with the remote registry
// for guildID (global when empty). Runs once on ready and again on refresh
// requests.
func (b *Bot) syncCommands(ctx context.Context, guildID string) {
	appID, err := b.appID()
	if err != nil {
		log.Printf("[ERR] Failed to resolve app ID: %v", err)
		return
	}

	reg := &discordRegistry{s: b.dg, appID: appID, guildID: guildID}
	local := command.LoadAll(b.cfg.CommandsPath)
	if err := sync(ctx, reg, local, b.limiter); err != nil {
		log.Printf("[ERR] Command sync aborted: %v", err)
	}
}

// sync fetches a fresh remote snapshot and walks the local descriptor list:
// deleted-and-registered commands are removed, changed ones updated, missing
// ones created. Remote commands with no local counterpart are left alone.
// Per-item transport failures are logged and the pass continues; a failed
// fetch aborts the pass.
func sync(ctx context.Context, reg registry, local []*command.Descriptor, limiter *rate.Limiter) error {
	remote, err := reg.Fetch()
	if err != nil {
		return fmt.Errorf("failed to fetch registered commands: %w", err)
	}

	remoteByName := make(map[string]*discordgo.ApplicationCommand, len(remote))
	for _, rc := range remote {
		remoteByName[rc.Name] = rc
	}

	for _, lc := range local {
		rc, registered := remoteByName[lc.Name]

		switch {
		case registered && lc.Deleted:
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			if err := reg.Delete(rc.ID); err != nil {
				log.Printf("[ERR] Failed to delete command %s: %v", lc.Name, err)
				continue
			}
			log.Printf("[DONE] Deleted command: %s", lc.Name)

		case lc.Deleted:
			// not registered, nothing to remove
			log.Printf("[INFO] Skipping %s (flagged deleted)", lc.Name)

		case registered && areDifferent(rc, lc):
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			if err := reg.Edit(rc.ID, definition(lc)); err != nil {
				log.Printf("[ERR] Failed to update command %s: %v", lc.Name, err)
				continue
			}
			log.Printf("[DONE] Updated command: %s", lc.Name)

		case !registered:
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			if err := reg.Create(definition(lc)); err != nil {
				log.Printf("[ERR] Failed to create command %s: %v", lc.Name, err)
				continue
			}
			log.Printf("[DONE] Created command: %s", lc.Name)
		}
	}
	return nil
}

// definition builds the wire descriptor for a local command.
func definition(d *command.Descriptor) *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:        d.Name,
		Description: d.Description,
		Type:        discordgo.ChatApplicationCommand,
	}
	for _, o := range d.Options {
		opt := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionType(o.Type),
			Name:        o.Name,
			Description: o.Description,
			Required:    o.Required,
		}
		for _, c := range o.Choices {
			opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  c.Name,
				Value: c.Value,
			})
		}
		def.Options = append(def.Options, opt)
	}
	return def
}

// areDifferent reports whether the registered command deviates from the local
// descriptor in description, option count, or any same-named option's
// description, type, required flag, choice count or choice values. Options
// and choices are matched by name, so ordering never counts as a difference;
// anything missing on the remote side does.
func areDifferent(rc *discordgo.ApplicationCommand, lc *command.Descriptor) bool {
	if rc.Description != lc.Description {
		return true
	}
	if len(rc.Options) != len(lc.Options) {
		return true
	}

	remoteOpts := make(map[string]*discordgo.ApplicationCommandOption, len(rc.Options))
	for _, o := range rc.Options {
		remoteOpts[o.Name] = o
	}

	for _, lo := range lc.Options {
		ro, ok := remoteOpts[lo.Name]
		if !ok {
			return true
		}
		if ro.Description != lo.Description ||
			int(ro.Type) != lo.Type ||
			ro.Required != lo.Required ||
			len(ro.Choices) != len(lo.Choices) {
			return true
		}

		remoteChoices := make(map[string]any, len(ro.Choices))
		for _, c := range ro.Choices {
			remoteChoices[c.Name] = c.Value
		}
		for _, lch := range lo.Choices {
			rv, ok := remoteChoices[lch.Name]
			if !ok || !equalChoiceValue(rv, lch.Value) {
				return true
			}
		}
	}
	return false
}

// equalChoiceValue compares choice values as JSON scalars. Numbers may arrive
// as different numeric types depending on which side decoded them.
func equalChoiceValue(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
