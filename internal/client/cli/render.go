package cli

import (
	"fmt"
	"time"

	"github.com/ktb-chat/chatclient/internal/client/models"
	"github.com/ktb-chat/chatclient/internal/client/transfer"
)

// formatKoreanTime renders a timestamp the way the room UI shows it,
// e.g. "오후 3:04".
func formatKoreanTime(t time.Time) string {
	meridiem := "오전"
	h := t.Hour()
	if h >= 12 {
		meridiem = "오후"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%s %d:%02d", meridiem, h12, t.Minute())
}

func renderMessage(m *models.Message) string {
	sender := "알 수 없음"
	if m.Sender != nil {
		sender = m.Sender.Name
	}
	ts := formatKoreanTime(m.Timestamp)

	if m.File != nil {
		label := "파일"
		if m.File.IsImage() {
			label = "이미지"
		}
		line := fmt.Sprintf("[%s] %s: [%s] %s (%s)", ts, sender, label, m.File.OriginalName, transfer.FormatSize(m.File.Size))
		if m.Content != "" {
			line += " " + m.Content
		}
		return line
	}
	return fmt.Sprintf("[%s] %s: %s", ts, sender, m.Content)
}
