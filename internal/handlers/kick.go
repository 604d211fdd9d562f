package handlers

import (
	"fmt"

	"server-herald/internal/command"
	"server-herald/internal/discord"
)

func init() {
	command.RegisterHandler("kick", kick)
}

func kick(ctx *command.Context) error {
	var userID, reason string
	for _, opt := range ctx.Event.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			userID = opt.UserValue(nil).ID
		case "reason":
			reason = opt.StringValue()
		}
	}
	if userID == "" {
		return discord.RespondEphemeral(ctx.Session, ctx.Event, "No user provided.")
	}

	if err := ctx.Session.GuildMemberDeleteWithReason(ctx.Event.GuildID, userID, reason); err != nil {
		return fmt.Errorf("failed to kick %s: %w", userID, err)
	}
	return discord.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Kicked <@%s>.", userID))
}
