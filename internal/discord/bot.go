package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"server-herald/internal/command"
	"server-herald/internal/config"
	"server-herald/internal/database"
	"server-herald/internal/permission"
	"server-herald/internal/sysevent"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Bot wires the module loader, the event dispatcher, the command executor and
// the command synchronizer to a Discord session.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	db      database.Handles
	gate    permission.Gate
	limiter *rate.Limiter
	ctx     context.Context
}

// NewBot creates a bot over the given config and shared database handles.
func NewBot(cfg *config.Config, db database.Handles) *Bot {
	return &Bot{
		cfg:  cfg,
		db:   db,
		gate: permission.Gate{TestGuildID: cfg.TestGuildID, DeveloperIDs: cfg.DeveloperIDs},
		// stay well under Discord's command registration rate limit
		limiter: rate.NewLimiter(rate.Limit(20), 1),
	}
}

// Run opens the session and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.ctx = ctx
	dg.Identify.Intents = discordgo.IntentsAll

	b.registerSubscriptions()

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	go b.handleSystemEvents(ctx)

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	return nil
}

// onReady runs the command synchronizer once before any user ready handlers.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] ✅ Discord bot %v is running.", r.User.Username)

	if b.cfg.InitSlashCommands {
		b.syncCommands(b.ctx, b.cfg.TestGuildID)
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	b.fireEvent(eventReady, s, r)
}

// handleSystemEvents reacts to control events published by command handlers.
func (b *Bot) handleSystemEvents(ctx context.Context) {
	for {
		select {
		case evt := <-sysevent.Events():
			switch evt.Type {
			case sysevent.RefreshCommands:
				log.Printf("[INFO] Refreshing commands for guild %s (target: %s)", evt.GuildID, evt.Target)
				if evt.Target == "" || strings.EqualFold(evt.Target, "all") {
					b.syncCommands(ctx, evt.GuildID)
				} else {
					b.refreshSingle(ctx, evt.GuildID, evt.Target)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// refreshSingle re-registers one command by name without a full sync pass.
func (b *Bot) refreshSingle(ctx context.Context, guildID, name string) {
	appID, err := b.appID()
	if err != nil {
		log.Printf("[ERR] Failed to resolve app ID: %v", err)
		return
	}
	for _, d := range command.LoadAll(b.cfg.CommandsPath) {
		if strings.EqualFold(d.Name, name) {
			if err := b.limiter.Wait(ctx); err != nil {
				return
			}
			if _, err := b.dg.ApplicationCommandCreate(appID, guildID, definition(d)); err != nil {
				log.Printf("[ERR] Failed to update command %s: %v", d.Name, err)
			} else {
				log.Printf("[DONE] Updated command: %s", d.Name)
			}
			return
		}
	}
	log.Printf("[WARN] No command found for refresh target: %s", name)
}

// appID returns the bot's application ID, fetching from Discord if not cached
// in State.
func (b *Bot) appID() (string, error) {
	if id := b.dg.State.User.ID; id != "" {
		return id, nil
	}
	u, err := b.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return u.ID, nil
}
