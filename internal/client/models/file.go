// Package models defines the chat client's data types.
package models

import "strings"

// FileMetadata describes a successfully uploaded file. It is produced by the
// transfer client and, once embedded in a message, never mutated.
type FileMetadata struct {
	Key          string `json:"key"`
	OriginalName string `json:"originalName"`
	Mimetype     string `json:"mimetype"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

// IsImage reports whether the file should be presented as an inline image
// rather than a downloadable document.
func (f *FileMetadata) IsImage() bool {
	return f != nil && strings.HasPrefix(f.Mimetype, "image/")
}

// Attachment returns the wire subset of the metadata. The retrieval URL is
// derived from the key on the receiving side and does not travel with the
// message.
func (f *FileMetadata) Attachment() *FileAttachment {
	if f == nil {
		return nil
	}
	return &FileAttachment{
		Key:          f.Key,
		OriginalName: f.OriginalName,
		Mimetype:     f.Mimetype,
		Size:         f.Size,
	}
}

// FileAttachment is the part of FileMetadata embedded in an outbound message.
type FileAttachment struct {
	Key          string `json:"key"`
	OriginalName string `json:"originalName"`
	Mimetype     string `json:"mimetype"`
	Size         int64  `json:"size"`
}
