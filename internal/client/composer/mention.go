package composer

import (
	"strings"

	"github.com/ktb-chat/chatclient/internal/client/models"
)

// FilterParticipants returns the participants matching the active mention
// filter by display name or email, case-insensitively. Input order is
// preserved; the result is never re-sorted.
func (c *Composer) FilterParticipants(participants []*models.User) []*models.User {
	out := make([]*models.User, 0, len(participants))
	for _, u := range participants {
		if u == nil {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), c.mentionFilter) ||
			strings.Contains(strings.ToLower(u.Email), c.mentionFilter) {
			out = append(out, u)
		}
	}
	return out
}

// SelectMention moves the highlighted row of the mention list, clamped to the
// given list length.
func (c *Composer) SelectMention(index, listLen int) {
	if listLen <= 0 {
		c.mentionIndex = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= listLen {
		index = listLen - 1
	}
	c.mentionIndex = index
}
