package composer

import "github.com/ktb-chat/chatclient/internal/client/models"

// At most one upload is live per draft. Each attempt gets a generation
// number; callbacks carrying a stale generation are ignored, so starting a
// new upload (or removing the attachment) orphans whatever is still in
// flight and a late arrival cannot clobber the draft.

// BeginUpload starts a new attachment attempt and returns its generation.
func (c *Composer) BeginUpload() uint64 {
	c.uploadGen++
	c.uploading = true
	c.uploadProgress = 0
	c.uploadErr = nil
	return c.uploadGen
}

// UploadProgress records progress for the given attempt. Progress never goes
// backwards even if the reporter misbehaves.
func (c *Composer) UploadProgress(gen uint64, percent int) {
	if gen != c.uploadGen {
		return
	}
	if percent > c.uploadProgress {
		c.uploadProgress = percent
	}
}

// FinishUpload settles the given attempt with either metadata or an error.
func (c *Composer) FinishUpload(gen uint64, md *models.FileMetadata, err error) {
	if gen != c.uploadGen {
		return
	}
	c.uploading = false
	if err != nil {
		c.uploadErr = err
		return
	}
	c.attached = md
}

// AttachUpload records an already-finished upload as the draft's attachment,
// bypassing the progress machinery.
func (c *Composer) AttachUpload(md *models.FileMetadata) {
	c.uploadGen++
	c.uploading = false
	c.uploadProgress = 0
	c.uploadErr = nil
	c.attached = md
}

// RemoveAttachment clears the attachment along with any progress or error
// state left from the attempt that produced it.
func (c *Composer) RemoveAttachment() {
	c.uploadGen++
	c.uploading = false
	c.uploadProgress = 0
	c.uploadErr = nil
	c.attached = nil
}
