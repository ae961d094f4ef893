// Package cli is the terminal presenter driving the chat client core: it
// turns REPL commands into composer/transfer calls and renders channel events
// as they arrive.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/ktb-chat/chatclient/internal/client/api"
	"github.com/ktb-chat/chatclient/internal/client/channel"
	"github.com/ktb-chat/chatclient/internal/client/composer"
	"github.com/ktb-chat/chatclient/internal/client/config"
	"github.com/ktb-chat/chatclient/internal/client/models"
	"github.com/ktb-chat/chatclient/internal/client/transfer"
	"github.com/ktb-chat/chatclient/internal/logging"
)

// App wires the channel, the transfer client, and the composer together and
// holds the room state the presenter renders from.
type App struct {
	config   *config.Config
	log      logging.Logger
	channel  *channel.WS
	transfer *transfer.Client
	composer *composer.Composer

	// mu guards room state shared between the read pump and the REPL.
	mu       sync.Mutex
	messages []*models.Message
	room     *models.Room
	user     *models.User
}

// NewApp dials the realtime channel and assembles the client core. The token
// authenticates the websocket handshake only; everything else about the
// session is out of the client's hands.
func NewApp(ctx context.Context, cfg *config.Config, userName, token string, log logging.Logger) (*App, error) {
	ch, err := channel.Dial(ctx, cfg.ChannelURL, token, log)
	if err != nil {
		return nil, fmt.Errorf("connecting realtime channel: %w", err)
	}

	backend := api.NewHTTPClient(cfg.APIBaseURL)
	tc := transfer.NewClient(backend, transfer.Config{
		StorageBaseURL: cfg.StorageBaseURL,
		DownloadDir:    cfg.DownloadDir,
		Timeout:        cfg.RequestTimeout,
	}, log)

	a := &App{
		config:   cfg,
		log:      log,
		channel:  ch,
		transfer: tc,
		composer: composer.New(ch, log),
		user:     &models.User{ID: uuid.NewString(), Name: userName},
	}

	ch.On(channel.EventMessage, a.onMessage)
	ch.On(channel.EventPreviousLoaded, a.onPreviousLoaded)
	ch.On(channel.EventMessageRead, a.onMessageRead)
	ch.OnSessionEnd(a.onSessionEnd)

	return a, nil
}

// Run starts the read pump and hands control to the REPL until the user
// leaves or input ends.
func (a *App) Run(ctx context.Context) {
	go a.channel.Listen(ctx)
	defer a.channel.Close()

	printlnFn("연결되었습니다. 'help'를 입력하면 명령어를 볼 수 있습니다.")
	runREPL(ctx, a, a.prompt, newStdinScanner())
}

func (a *App) prompt() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.room == nil {
		return "(방 없음)"
	}
	return a.room.ID
}

// Join mounts a room: the draft resets and history starts accumulating from
// the messages the server pushes.
func (a *App) Join(ctx context.Context, roomID string) error {
	a.mu.Lock()
	a.room = &models.Room{ID: roomID}
	a.messages = nil
	a.mu.Unlock()

	a.composer.SetRoom(roomID, a.user)
	printlnFn("입장:", roomID)
	return nil
}

// Type feeds a keystroke batch into the draft with the cursor at the end and
// renders the mention list when it opens.
func (a *App) Type(ctx context.Context, text string) error {
	a.composer.OnTextChange(text, len(text))

	if a.composer.MentionOpen() {
		matches := a.composer.FilterParticipants(a.participants())
		for i, u := range matches {
			printlnFn(fmt.Sprintf("  [%d] %s <%s>", i, u.Name, u.Email))
		}
		if len(matches) == 0 {
			printlnFn("  (일치하는 참여자가 없습니다)")
		}
	}
	return nil
}

// Mention inserts the indexed participant from the open mention list.
func (a *App) Mention(ctx context.Context, arg string) error {
	if !a.composer.MentionOpen() {
		printlnFn("멘션 목록이 열려 있지 않습니다.")
		return nil
	}
	idx, err := strconv.Atoi(arg)
	if err != nil {
		printlnFn("Usage: mention <번호>")
		return nil
	}
	matches := a.composer.FilterParticipants(a.participants())
	if idx < 0 || idx >= len(matches) {
		printlnFn("해당 번호의 참여자가 없습니다.")
		return nil
	}
	a.composer.InsertMention(matches[idx], len(a.composer.Text()))
	printlnFn("입력:", a.composer.Text())
	return nil
}

// Send submits the draft, optionally replacing its text first.
func (a *App) Send(ctx context.Context, text string) error {
	if text != "" {
		a.composer.OnTextChange(text, len(text))
	}

	env, err := a.composer.Submit()
	if err != nil {
		if composer.IsSessionError(err) {
			a.onSessionEnd()
			return err
		}
		toastError(userMessage(err))
		return err
	}
	if env == nil {
		return nil // nothing to send
	}

	if env.Kind == models.KindFile {
		printlnFn("파일 메시지 전송:", env.FileData.OriginalName)
	} else {
		printlnFn("전송:", env.Content)
	}
	return nil
}

// Attach validates and uploads a local file, then records it as the draft's
// attachment. A failed upload leaves the draft without an attachment and the
// error on the draft state.
func (a *App) Attach(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		toastError("파일을 열 수 없습니다: " + path)
		return err
	}

	name := filepath.Base(path)
	file := &transfer.File{
		Name:     name,
		MimeType: transfer.DetectMimeType(name, data),
		Data:     data,
	}

	gen := a.composer.BeginUpload()
	md, err := a.transfer.Upload(ctx, file, func(percent int) {
		a.composer.UploadProgress(gen, percent)
	})
	a.composer.FinishUpload(gen, md, err)

	if err != nil {
		toastError(userMessage(err))
		return err
	}

	printlnFn(fmt.Sprintf("첨부 완료: %s (%s)", md.OriginalName, transfer.FormatSize(md.Size)))
	return nil
}

// Detach drops the pending attachment.
func (a *App) Detach(ctx context.Context) error {
	a.composer.RemoveAttachment()
	printlnFn("첨부가 제거되었습니다.")
	return nil
}

// Download saves the indexed file message from the room history.
func (a *App) Download(ctx context.Context, arg string) error {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		printlnFn("Usage: download <번호>")
		return nil
	}

	var target *models.FileMetadata
	a.mu.Lock()
	n := 0
	for _, m := range a.messages {
		if m.File == nil {
			continue
		}
		if n == idx {
			target = m.File
			break
		}
		n++
	}
	a.mu.Unlock()

	if target == nil {
		printlnFn("해당 번호의 파일이 없습니다.")
		return nil
	}

	path, err := a.transfer.Download(ctx, target.Key, target.OriginalName)
	if err != nil {
		toastError(userMessage(err))
		return err
	}
	printlnFn("다운로드 완료:", path)
	return nil
}

// Older requests the previous page of messages.
func (a *App) Older(ctx context.Context) error {
	a.mu.Lock()
	snapshot := make([]*models.Message, len(a.messages))
	copy(snapshot, a.messages)
	a.mu.Unlock()

	if !a.composer.LoadOlder(snapshot) {
		printlnFn("불러올 이전 메시지가 없습니다.")
	}
	return nil
}

// Emoji toggles the emoji picker flag on the draft.
func (a *App) Emoji(ctx context.Context) error {
	a.composer.ToggleEmojiPicker()
	if a.composer.EmojiPickerOpen() {
		printlnFn("이모지 선택기 열림")
	} else {
		printlnFn("이모지 선택기 닫힘")
	}
	return nil
}

// Participants lists everyone seen in the room so far.
func (a *App) Participants(ctx context.Context) error {
	for _, u := range a.participants() {
		printlnFn(fmt.Sprintf("  %s <%s>", u.Name, u.Email))
	}
	return nil
}

// Status summarizes connection and draft state.
func (a *App) Status(ctx context.Context) error {
	printlnFn("연결:", a.channel.Connected())
	printlnFn("입력:", a.composer.Text())
	if md := a.composer.Attached(); md != nil {
		printlnFn(fmt.Sprintf("첨부: %s (%s)", md.OriginalName, transfer.FormatSize(md.Size)))
	}
	if a.composer.Uploading() {
		printlnFn(fmt.Sprintf("업로드 중: %d%%", a.composer.Progress()))
	}
	if err := a.composer.UploadError(); err != nil {
		printlnFn("업로드 오류:", userMessage(err))
	}
	return nil
}

func (a *App) participants() []*models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.room == nil {
		return nil
	}
	return a.room.Participants
}

// userMessage maps core errors onto the Korean copy shown to the user.
func userMessage(err error) string {
	var te *transfer.Error
	if errors.As(err, &te) {
		return te.Message
	}
	switch {
	case errors.Is(err, composer.ErrChannelUnavailable), errors.Is(err, channel.ErrClosed):
		return "채팅 서버와 연결이 끊어졌습니다."
	case errors.Is(err, composer.ErrNoRoom):
		return "채팅방 정보를 찾을 수 없습니다."
	}
	return "메시지 전송 중 오류가 발생했습니다."
}

func toastError(msg string) {
	printlnFn("[오류]", msg)
}

/*
 * channel event handlers (invoked from the read pump)
 */

func (a *App) onMessage(data json.RawMessage) {
	var m models.Message
	if err := json.Unmarshal(data, &m); err != nil {
		a.log.Warn(context.Background(), "dropping malformed message", "error", err)
		return
	}

	a.mu.Lock()
	a.messages = append(a.messages, &m)
	a.rememberSenderLocked(m.Sender)
	a.mu.Unlock()

	printlnFn(renderMessage(&m))
}

func (a *App) onPreviousLoaded(data json.RawMessage) {
	var page struct {
		Messages []*models.Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		a.log.Warn(context.Background(), "dropping malformed history page", "error", err)
		a.composer.OlderLoaded()
		return
	}

	a.mu.Lock()
	a.messages = append(page.Messages, a.messages...)
	for _, m := range page.Messages {
		a.rememberSenderLocked(m.Sender)
	}
	a.mu.Unlock()

	a.composer.OlderLoaded()
	printlnFn(fmt.Sprintf("이전 메시지 %d개를 불러왔습니다.", len(page.Messages)))
}

func (a *App) onMessageRead(data json.RawMessage) {
	var receipt struct {
		MessageID string `json:"messageId"`
		UserID    string `json:"userId"`
	}
	if err := json.Unmarshal(data, &receipt); err != nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, m := range a.messages {
		if m.ID == receipt.MessageID {
			m.Readers = append(m.Readers, receipt.UserID)
			return
		}
	}
}

func (a *App) onSessionEnd() {
	toastError("세션이 만료되었습니다. 다시 로그인해 주세요.")
	a.channel.Close()
}

// rememberSenderLocked accumulates senders as the room's participant list;
// the server pushes no separate roster over this channel.
func (a *App) rememberSenderLocked(u *models.User) {
	if u == nil || a.room == nil {
		return
	}
	for _, p := range a.room.Participants {
		if p.ID == u.ID {
			return
		}
	}
	a.room.Participants = append(a.room.Participants, u)
}
