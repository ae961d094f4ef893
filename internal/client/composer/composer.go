// Package composer owns the draft-message state for the open room: text,
// mention autocomplete, emoji-picker visibility, the attached file, and
// submission over the realtime channel. All state changes go through the
// transition methods here; there are no raw field setters.
package composer

import (
	"errors"
	"strings"
	"time"

	"github.com/ktb-chat/chatclient/internal/client/channel"
	"github.com/ktb-chat/chatclient/internal/client/models"
	"github.com/ktb-chat/chatclient/internal/logging"
)

// Channel is the already-connected realtime connection the composer emits on.
type Channel interface {
	Connected() bool
	Emit(event string, payload any) error
}

// Submit-time state errors. The kind is matched with errors.Is; the Korean
// copy shown to the user lives with the presenter.
var (
	ErrChannelUnavailable = errors.New("channel unavailable")
	ErrNoRoom             = errors.New("no room")
)

// Composer is the single owner of one room's draft. It is meant for the one
// goroutine driving the UI; ordering is last write wins.
type Composer struct {
	channel Channel
	log     logging.Logger

	roomID string
	user   *models.User

	text          string
	mentionOpen   bool
	mentionFilter string
	mentionIndex  int
	emojiOpen     bool

	attached       *models.FileMetadata
	uploadGen      uint64
	uploading      bool
	uploadProgress int
	uploadErr      error

	loadingOlder bool
}

func New(ch Channel, log logging.Logger) *Composer {
	return &Composer{channel: ch, log: log}
}

// SetRoom mounts a room and resets the draft; exactly one draft is live per
// open room.
func (c *Composer) SetRoom(roomID string, user *models.User) {
	c.roomID = roomID
	c.user = user
	c.text = ""
	c.mentionOpen = false
	c.mentionFilter = ""
	c.mentionIndex = 0
	c.emojiOpen = false
	c.RemoveAttachment()
	c.loadingOlder = false
}

// OnTextChange replaces the draft text and recomputes the mention state from
// the cursor position. It runs on every keystroke: the nearest '@' before the
// cursor opens the mention list unless a space follows it.
func (c *Composer) OnTextChange(text string, cursor int) {
	c.text = text

	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}

	before := text[:cursor]
	if at := strings.LastIndexByte(before, '@'); at >= 0 {
		candidate := before[at+1:]
		if !strings.Contains(candidate, " ") {
			c.mentionFilter = strings.ToLower(candidate)
			c.mentionOpen = true
			c.mentionIndex = 0
			return
		}
	}

	c.mentionOpen = false
}

// InsertMention replaces the active "@filter" token with "@Name " and returns
// the new cursor position, just after the inserted trailing space. The
// mention list closes.
func (c *Composer) InsertMention(user *models.User, cursor int) int {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(c.text) {
		cursor = len(c.text)
	}

	at := strings.LastIndexByte(c.text[:cursor], '@')
	if at < 0 {
		return cursor
	}

	mention := "@" + user.Name + " "
	c.text = c.text[:at] + mention + c.text[cursor:]
	c.mentionOpen = false
	return at + len(mention)
}

// ToggleEmojiPicker flips the emoji-picker visibility.
func (c *Composer) ToggleEmojiPicker() {
	c.emojiOpen = !c.emojiOpen
}

// Submit packages the draft into an outbound envelope and emits it on the
// channel. An attached file wins over plain text; an empty draft is a silent
// no-op returning (nil, nil). On success the sent part of the draft is
// cleared and both the emoji picker and the mention list close.
func (c *Composer) Submit() (*models.OutboundMessage, error) {
	if c.channel == nil || !c.channel.Connected() || c.user == nil {
		return nil, ErrChannelUnavailable
	}
	if c.roomID == "" {
		return nil, ErrNoRoom
	}

	var env *models.OutboundMessage
	switch {
	case c.attached != nil:
		env = &models.OutboundMessage{
			Room:     c.roomID,
			Kind:     models.KindFile,
			Content:  c.text,
			FileData: c.attached.Attachment(),
		}
	case strings.TrimSpace(c.text) != "":
		env = &models.OutboundMessage{
			Room:    c.roomID,
			Kind:    models.KindText,
			Content: strings.TrimSpace(c.text),
		}
	default:
		return nil, nil
	}

	if err := c.channel.Emit(channel.EventChatMessage, env); err != nil {
		return nil, err
	}

	c.text = ""
	if env.Kind == models.KindFile {
		c.RemoveAttachment()
	}
	c.emojiOpen = false
	c.mentionOpen = false
	return env, nil
}

// LoadOlder asks the channel for the page of up to 30 messages strictly
// before the oldest known one. It is a guarded no-op while disconnected,
// while a page is already loading, or when there is no message to derive the
// cutoff from. Reports whether a request went out.
func (c *Composer) LoadOlder(messages []*models.Message) bool {
	if c.channel == nil || !c.channel.Connected() {
		return false
	}
	if c.loadingOlder {
		return false
	}

	oldest := oldestTimestamp(messages)
	if oldest.IsZero() {
		return false
	}

	c.loadingOlder = true
	err := c.channel.Emit(channel.EventFetchPrevious, &models.FetchPreviousRequest{
		RoomID: c.roomID,
		Before: oldest,
		Limit:  30,
	})
	if err != nil {
		c.loadingOlder = false
		return false
	}
	return true
}

// OlderLoaded clears the loading flag once the requested page arrived (or
// the request failed); the caller merges the page itself.
func (c *Composer) OlderLoaded() {
	c.loadingOlder = false
}

func oldestTimestamp(messages []*models.Message) time.Time {
	var oldest time.Time
	for _, m := range messages {
		if m == nil || m.Timestamp.IsZero() {
			continue
		}
		if oldest.IsZero() || m.Timestamp.Before(oldest) {
			oldest = m.Timestamp
		}
	}
	return oldest
}

// IsSessionError reports whether a submit failure means the session itself is
// dead, in which case the session-error callback should run instead of a
// plain error toast.
func IsSessionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "세션") ||
		strings.Contains(msg, "인증") ||
		strings.Contains(msg, "토큰")
}
