package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktb-chat/chatclient/internal/client/channel"
	"github.com/ktb-chat/chatclient/internal/client/composer"
	"github.com/ktb-chat/chatclient/internal/client/models"
	"github.com/ktb-chat/chatclient/internal/client/transfer"
	"github.com/ktb-chat/chatclient/internal/logging"
)

func TestUserMessage(t *testing.T) {
	te := &transfer.Error{Reason: transfer.ReasonNotFound, Message: "파일을 찾을 수 없습니다."}
	assert.Equal(t, "파일을 찾을 수 없습니다.", userMessage(te))

	assert.Equal(t, "채팅 서버와 연결이 끊어졌습니다.", userMessage(composer.ErrChannelUnavailable))
	assert.Equal(t, "채팅 서버와 연결이 끊어졌습니다.", userMessage(channel.ErrClosed))
	assert.Equal(t, "채팅방 정보를 찾을 수 없습니다.", userMessage(composer.ErrNoRoom))
	assert.Equal(t, "메시지 전송 중 오류가 발생했습니다.", userMessage(errors.New("boom")))
}

func TestOnMessage_AccumulatesHistoryAndParticipants(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) {}
	t.Cleanup(func() { printlnFn = origPrint })

	a := &App{
		log:  logging.NewDiscard(),
		room: &models.Room{ID: "room-1"},
	}

	raw, err := json.Marshal(&models.Message{
		ID:      "m1",
		Kind:    models.KindText,
		Content: "hi",
		Sender:  &models.User{ID: "u2", Name: "Bob", Email: "bob@example.com"},
	})
	require.NoError(t, err)

	a.onMessage(raw)
	a.onMessage(raw) // same sender again

	assert.Len(t, a.messages, 2)
	require.Len(t, a.room.Participants, 1, "each sender is remembered once")
	assert.Equal(t, "Bob", a.room.Participants[0].Name)
}

func TestOnMessageRead_MarksReader(t *testing.T) {
	a := &App{
		log:      logging.NewDiscard(),
		messages: []*models.Message{{ID: "m1"}, {ID: "m2"}},
	}

	a.onMessageRead(json.RawMessage(`{"messageId":"m2","userId":"u9"}`))

	assert.Empty(t, a.messages[0].Readers)
	assert.Equal(t, []string{"u9"}, a.messages[1].Readers)
}
