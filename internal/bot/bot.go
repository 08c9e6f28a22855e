package bot

import (
	"context"
	"strings"

	"gopkg.in/telebot.v3"

	"github.com/ytget/tg-video-bot/internal/download"
)

// SelectUnique tags quality picker buttons so their callbacks route here
const SelectUnique = "dl"

const msgGreeting = "📥 Send a YouTube video link."

// RegisterHandlers wires the chat handlers onto b. Long-running work is
// offloaded to goroutines so update polling is never blocked; per-user
// serialization is the orchestrator's job.
func RegisterHandlers(b *telebot.Bot, svc *download.Service) {
	b.Handle("/start", func(c telebot.Context) error {
		return c.Send(msgGreeting)
	})

	b.Handle(telebot.OnText, func(c telebot.Context) error {
		userID := c.Chat().ID
		text := strings.TrimSpace(c.Text())
		go svc.HandleLink(context.Background(), userID, text)
		return nil
	})

	selectBtn := telebot.Btn{Unique: SelectUnique}
	b.Handle(&selectBtn, func(c telebot.Context) error {
		userID := c.Chat().ID
		formatID := c.Data()
		go svc.HandleSelection(context.Background(), userID, formatID)
		return c.Respond()
	})
}
