package composer

import "github.com/ktb-chat/chatclient/internal/client/models"

// Read-only views of the draft for the presenter.

func (c *Composer) Text() string { return c.text }

func (c *Composer) RoomID() string { return c.roomID }

func (c *Composer) User() *models.User { return c.user }

func (c *Composer) MentionOpen() bool { return c.mentionOpen }

func (c *Composer) MentionFilter() string { return c.mentionFilter }

func (c *Composer) MentionIndex() int { return c.mentionIndex }

func (c *Composer) EmojiPickerOpen() bool { return c.emojiOpen }

func (c *Composer) Attached() *models.FileMetadata { return c.attached }

func (c *Composer) Uploading() bool { return c.uploading }

func (c *Composer) Progress() int { return c.uploadProgress }

func (c *Composer) UploadError() error { return c.uploadErr }

func (c *Composer) LoadingOlder() bool { return c.loadingOlder }
