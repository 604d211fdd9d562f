package handlers

import (
	"log"

	"server-herald/internal/database"
	"server-herald/internal/discord"
	"server-herald/internal/event"

	"github.com/bwmarrin/discordgo"
)

func init() {
	event.RegisterHandler("readyLog", readyLog)
	event.RegisterHandler("mentionLog", mentionLog)
}

func readyLog(s *discordgo.Session, evt any, db database.Handles) error {
	r, ok := evt.(*discordgo.Ready)
	if !ok {
		return nil
	}
	log.Printf("[INFO] Logged in as %s, serving %d guild(s)", r.User.Username, len(r.Guilds))
	return nil
}

func mentionLog(s *discordgo.Session, evt any, db database.Handles) error {
	m, ok := evt.(*discordgo.MessageCreate)
	if !ok || m.Author == nil || m.Author.ID == s.State.User.ID {
		return nil
	}
	for _, user := range m.Mentions {
		if user.ID == s.State.User.ID {
			log.Printf("[INFO] Mentioned by %s in %s", m.Author.Username, m.ChannelID)
			if h, err := db.Get("store"); err == nil {
				if store, ok := h.(*database.JSONStore); ok {
					if err := store.Set("last_mention:"+m.GuildID, m.Author.ID); err != nil {
						log.Printf("[WARN] Failed to record mention: %v", err)
					}
				}
			}
			return discord.Message(s, m.ChannelID, "You called? 👀")
		}
	}
	return nil
}
