package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// RoleGranter assigns Discord roles to guild members when a purchased
// item that carries a role reference is used. The bot requires the
// MANAGE_ROLES permission in the guild.
type RoleGranter struct {
	session *discordgo.Session
}

// NewRoleGranter creates a role granter bound to the bot session.
func NewRoleGranter(session *discordgo.Session) *RoleGranter {
	return &RoleGranter{
		session: session,
	}
}

// GrantRole adds the role to the member.
func (r *RoleGranter) GrantRole(guildID string, memberID string, roleID string) error {
	log.Trace("--> GrantRole")
	defer log.Trace("<-- GrantRole")

	if err := r.session.GuildMemberRoleAdd(guildID, memberID, roleID); err != nil {
		return fmt.Errorf("adding role %s to member %s in guild %s: %w", roleID, memberID, guildID, err)
	}
	return nil
}
