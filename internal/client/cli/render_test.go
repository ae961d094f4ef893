package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ktb-chat/chatclient/internal/client/models"
)

func TestFormatKoreanTime(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "오전 12:05"},
		{9, 30, "오전 9:30"},
		{12, 0, "오후 12:00"},
		{15, 4, "오후 3:04"},
		{23, 59, "오후 11:59"},
	}

	for _, tc := range tests {
		ts := time.Date(2024, 11, 1, tc.hour, tc.minute, 0, 0, time.UTC)
		assert.Equal(t, tc.want, formatKoreanTime(ts))
	}
}

func TestRenderMessage(t *testing.T) {
	ts := time.Date(2024, 11, 1, 15, 4, 0, 0, time.UTC)

	text := &models.Message{
		Kind:      models.KindText,
		Content:   "hello",
		Sender:    &models.User{Name: "Alice"},
		Timestamp: ts,
	}
	assert.Equal(t, "[오후 3:04] Alice: hello", renderMessage(text))

	file := &models.Message{
		Kind:   models.KindFile,
		Sender: &models.User{Name: "Bob"},
		File: &models.FileMetadata{
			OriginalName: "doc.pdf",
			Mimetype:     "application/pdf",
			Size:         1536,
		},
		Timestamp: ts,
	}
	assert.Equal(t, "[오후 3:04] Bob: [파일] doc.pdf (1.50 KB)", renderMessage(file))

	image := &models.Message{
		Kind:   models.KindFile,
		Sender: &models.User{Name: "Bob"},
		File: &models.FileMetadata{
			OriginalName: "cat.png",
			Mimetype:     "image/png",
			Size:         2048,
		},
		Content:   "귀엽다",
		Timestamp: ts,
	}
	assert.Equal(t, "[오후 3:04] Bob: [이미지] cat.png (2.00 KB) 귀엽다", renderMessage(image))

	anon := &models.Message{Kind: models.KindText, Content: "x", Timestamp: ts}
	assert.Equal(t, "[오후 3:04] 알 수 없음: x", renderMessage(anon))
}
