// Package handlers holds the compiled-in callbacks that command and event
// module files bind to by name.
package handlers

import (
	"fmt"

	"server-herald/internal/command"
	"server-herald/internal/discord"
)

func init() {
	command.RegisterHandler("ping", ping)
}

func ping(ctx *command.Context) error {
	latency := ctx.Session.HeartbeatLatency().Milliseconds()
	return discord.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Pong! 🏓 %dms", latency))
}
