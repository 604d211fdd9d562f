package handlers

import (
	"server-herald/internal/command"
	"server-herald/internal/discord"
	"server-herald/internal/sysevent"
)

func init() {
	command.RegisterHandler("reload", reload)
}

func reload(ctx *command.Context) error {
	target := "all"
	if opts := ctx.Event.ApplicationCommandData().Options; len(opts) > 0 {
		target = opts[0].StringValue()
	}

	sysevent.Publish(sysevent.Event{
		Type:    sysevent.RefreshCommands,
		GuildID: ctx.Event.GuildID,
		Target:  target,
	})
	return discord.RespondEphemeral(ctx.Session, ctx.Event, "Command refresh queued.")
}
