package bot

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/telebot.v3"

	"github.com/ytget/tg-video-bot/internal/download"
	"github.com/ytget/tg-video-bot/internal/model"
)

const (
	msgPickQuality = "🎬 %s\nSelect a quality:"
	videoMIME      = "video/mp4"
)

// Messenger adapts *telebot.Bot to the download.Messenger contract
type Messenger struct {
	bot *telebot.Bot
}

// NewMessenger creates the adapter over an authenticated bot
func NewMessenger(b *telebot.Bot) *Messenger {
	return &Messenger{bot: b}
}

// editable satisfies telebot.Editable for a stored message reference
type editable download.MessageRef

func (e editable) MessageSig() (string, int64) {
	return e.MessageID, e.ChatID
}

// SendText sends a plain text message and returns a reference for edits
func (m *Messenger) SendText(userID int64, text string) (download.MessageRef, error) {
	msg, err := m.bot.Send(telebot.ChatID(userID), text)
	if err != nil {
		return download.MessageRef{}, err
	}
	return download.MessageRef{ChatID: userID, MessageID: strconv.Itoa(msg.ID)}, nil
}

// EditText replaces the text of a previously sent message
func (m *Messenger) EditText(ref download.MessageRef, text string) error {
	_, err := m.bot.Edit(editable(ref), text)
	return err
}

// SendOptions sends the quality picker: the title above one inline button
// per option, each carrying the opaque format ID as callback data
func (m *Messenger) SendOptions(userID int64, title string, options []model.FormatOption) error {
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(options))
	for _, opt := range options {
		rows = append(rows, markup.Row(markup.Data(opt.Label, SelectUnique, opt.ID)))
	}
	markup.Inline(rows...)

	_, err := m.bot.Send(telebot.ChatID(userID), fmt.Sprintf(msgPickQuality, title), markup)
	return err
}

// SendFile uploads the local file as a video message
func (m *Messenger) SendFile(_ context.Context, userID int64, filePath, fileName, caption string) error {
	video := &telebot.Video{
		File:     telebot.FromDisk(filePath),
		FileName: fileName,
		Caption:  caption,
		MIME:     videoMIME,
	}
	_, err := m.bot.Send(telebot.ChatID(userID), video)
	return err
}
