package permission

import "github.com/bwmarrin/discordgo"

// permissionBits maps capability names as they appear in command descriptor
// files to Discord permission bits.
var permissionBits = map[string]int64{
	"CreateInstantInvite":    discordgo.PermissionCreateInstantInvite,
	"KickMembers":            discordgo.PermissionKickMembers,
	"BanMembers":             discordgo.PermissionBanMembers,
	"Administrator":          discordgo.PermissionAdministrator,
	"ManageChannels":         discordgo.PermissionManageChannels,
	"ManageGuild":            discordgo.PermissionManageServer,
	"AddReactions":           discordgo.PermissionAddReactions,
	"ViewAuditLog":           discordgo.PermissionViewAuditLogs,
	"ViewChannel":            discordgo.PermissionViewChannel,
	"SendMessages":           discordgo.PermissionSendMessages,
	"SendTTSMessages":        discordgo.PermissionSendTTSMessages,
	"ManageMessages":         discordgo.PermissionManageMessages,
	"EmbedLinks":             discordgo.PermissionEmbedLinks,
	"AttachFiles":            discordgo.PermissionAttachFiles,
	"ReadMessageHistory":     discordgo.PermissionReadMessageHistory,
	"MentionEveryone":        discordgo.PermissionMentionEveryone,
	"UseExternalEmojis":      discordgo.PermissionUseExternalEmojis,
	"UseApplicationCommands": discordgo.PermissionUseSlashCommands,
	"ManageThreads":          discordgo.PermissionManageThreads,
	"CreatePublicThreads":    discordgo.PermissionCreatePublicThreads,
	"CreatePrivateThreads":   discordgo.PermissionCreatePrivateThreads,
	"SendMessagesInThreads":  discordgo.PermissionSendMessagesInThreads,
	"Connect":                discordgo.PermissionVoiceConnect,
	"Speak":                  discordgo.PermissionVoiceSpeak,
	"MuteMembers":            discordgo.PermissionVoiceMuteMembers,
	"DeafenMembers":          discordgo.PermissionVoiceDeafenMembers,
	"MoveMembers":            discordgo.PermissionVoiceMoveMembers,
	"ChangeNickname":         discordgo.PermissionChangeNickname,
	"ManageNicknames":        discordgo.PermissionManageNicknames,
	"ManageRoles":            discordgo.PermissionManageRoles,
	"ManageWebhooks":         discordgo.PermissionManageWebhooks,
	"ManageEvents":           discordgo.PermissionManageEvents,
	"ModerateMembers":        discordgo.PermissionModerateMembers,
}

// Bit resolves a capability name to its permission bit.
func Bit(name string) (int64, bool) {
	bit, ok := permissionBits[name]
	return bit, ok
}
