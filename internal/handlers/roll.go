package handlers

import (
	"fmt"
	"log"
	"math/rand"

	"server-herald/internal/command"
	"server-herald/internal/database"
	"server-herald/internal/discord"
)

func init() {
	command.RegisterHandler("roll", roll)
}

func roll(ctx *command.Context) error {
	sides := int64(6)
	if opts := ctx.Event.ApplicationCommandData().Options; len(opts) > 0 {
		sides = opts[0].IntValue()
	}
	if sides < 2 {
		sides = 2
	}
	n := rand.Int63n(sides) + 1

	// remember the last roll per user when the store section is available
	if h, err := ctx.DB.Get("store"); err == nil {
		if store, ok := h.(*database.JSONStore); ok && ctx.Event.Member != nil {
			if err := store.Set("last_roll:"+ctx.Event.Member.User.ID, n); err != nil {
				log.Printf("[WARN] Failed to record roll: %v", err)
			}
		}
	}

	return discord.Respond(ctx.Session, ctx.Event, fmt.Sprintf("🎲 You rolled a %d (d%d).", n, sides))
}
