// Package permission decides whether a command invocation may proceed. The
// check is a pure function of the invocation and the command's declared
// requirements; all Discord I/O (resolving member and bot permission masks)
// happens before the gate is called.
package permission

import (
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"
)

// Invocation is the permission-relevant view of a single command invocation.
type Invocation struct {
	UserID            string
	GuildID           string
	MemberPermissions int64
	BotPermissions    int64
}

// Requirements is the permission-relevant view of a command descriptor.
type Requirements struct {
	DevOnly         bool
	TestOnly        bool
	UserPermissions []string
	BotPermissions  []string
}

// Result is the gate's verdict. Message is set only on denial.
type Result struct {
	Allowed bool
	Message string
}

// Gate evaluates requirements against the configured developer list and test
// guild. It has no side effects.
type Gate struct {
	TestGuildID  string
	DeveloperIDs []string
}

// Check runs the checks in fixed order, short-circuiting on the first failure:
// developer-only, guild-only, user capabilities, bot capabilities. Capability
// checks require every listed permission; the first missing one is reported by
// name. Administrator implies all other capabilities.
func (g Gate) Check(inv Invocation, req Requirements) Result {
	if req.DevOnly && !slices.Contains(g.DeveloperIDs, inv.UserID) {
		return deny("Only developers are allowed to run this command.")
	}

	if req.TestOnly && inv.GuildID != g.TestGuildID {
		return deny("This command cannot be run here.")
	}

	if inv.MemberPermissions&discordgo.PermissionAdministrator == 0 {
		for _, name := range req.UserPermissions {
			if bit, ok := permissionBits[name]; !ok || inv.MemberPermissions&bit == 0 {
				return deny(fmt.Sprintf("You need the `%s` permission to run this command.", name))
			}
		}
	}

	if inv.BotPermissions&discordgo.PermissionAdministrator == 0 {
		for _, name := range req.BotPermissions {
			if bit, ok := permissionBits[name]; !ok || inv.BotPermissions&bit == 0 {
				return deny(fmt.Sprintf("I need the `%s` permission to run this command.", name))
			}
		}
	}

	return Result{Allowed: true}
}

func deny(msg string) Result {
	return Result{Allowed: false, Message: msg}
}
