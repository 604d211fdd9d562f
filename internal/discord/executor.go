package discord

import (
	"log"

	"server-herald/internal/command"
	"server-herald/internal/permission"

	"github.com/bwmarrin/discordgo"
)

// runCommand routes an application-command interaction to the matching
// descriptor's callback. Commands are re-loaded from disk on every invocation
// so descriptor edits take effect without a restart.
func (b *Bot) runCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	desc := command.Find(command.LoadAll(b.cfg.CommandsPath), name)
	if desc == nil {
		log.Printf("[WARN] Unknown command: %s", name)
		return
	}

	if res := b.gate.Check(b.invocation(s, i, desc), requirements(desc)); !res.Allowed {
		if err := RespondOrFollowupEphemeral(s, i, res.Message); err != nil {
			log.Printf("[ERR] Failed to send denial for %s: %v", name, err)
		}
		return
	}

	db := b.db
	if len(desc.Databases) > 0 {
		db = b.db.Narrow(desc.Databases)
	}

	fn, ok := command.Handler(desc.Handler)
	if !ok {
		log.Printf("[ERR] Command %s references unknown handler %q", name, desc.Handler)
		b.replyError(s, i, name)
		return
	}

	if err := fn(&command.Context{Session: s, Event: i, DB: db}); err != nil {
		log.Printf("[ERR] Error running command %s: %v", name, err)
		b.replyError(s, i, name)
	}
}

// replyError sends the generic failure notice; a failure to send it is logged
// and swallowed.
func (b *Bot) replyError(s *discordgo.Session, i *discordgo.InteractionCreate, name string) {
	if err := RespondOrFollowupEphemeral(s, i, "There was an error running this command."); err != nil {
		log.Printf("[ERR] Failed to send error reply for %s: %v", name, err)
	}
}

// invocation gathers the permission-relevant facts of an interaction. The bot
// permission mask is only fetched when the descriptor asks for bot
// capabilities; a fetch failure is logged and treated as no permissions.
func (b *Bot) invocation(s *discordgo.Session, i *discordgo.InteractionCreate, desc *command.Descriptor) permission.Invocation {
	inv := permission.Invocation{GuildID: i.GuildID}
	if i.Member != nil && i.Member.User != nil {
		inv.UserID = i.Member.User.ID
		inv.MemberPermissions = i.Member.Permissions
	} else if i.User != nil {
		inv.UserID = i.User.ID
	}

	if len(desc.BotPermissions) > 0 {
		botID := s.State.User.ID
		perms, err := s.UserChannelPermissions(botID, i.ChannelID)
		if err != nil {
			log.Printf("[WARN] Failed to resolve bot permissions in %s: %v", i.ChannelID, err)
		} else {
			inv.BotPermissions = perms
		}
	}
	return inv
}

// requirements is the reduced, permission-only view of a descriptor.
func requirements(d *command.Descriptor) permission.Requirements {
	return permission.Requirements{
		DevOnly:         d.DevOnly,
		TestOnly:        d.TestOnly,
		UserPermissions: d.UserPermissions,
		BotPermissions:  d.BotPermissions,
	}
}
