package main

import (
	"log"

	"gopkg.in/telebot.v3"

	"github.com/ytget/tg-video-bot/internal/bot"
	"github.com/ytget/tg-video-bot/internal/config"
	"github.com/ytget/tg-video-bot/internal/download"
	"github.com/ytget/tg-video-bot/internal/platform"
	"github.com/ytget/tg-video-bot/internal/resolver"
	"github.com/ytget/tg-video-bot/internal/session"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	cfg, err := config.Load(config.DefaultConfigFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := platform.CreateDirectoryIfNotExists(cfg.Download.OutputDir); err != nil {
		log.Fatalf("creating downloads dir: %v", err)
	}

	b, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &telebot.LongPoller{Timeout: cfg.PollTimeout()},
	})
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	sessions := session.NewManager(session.NewStore(), cfg.SessionTTL())
	yt := resolver.NewYouTube()
	svc := download.NewService(sessions, yt, yt, bot.NewMessenger(b), download.Options{
		DownloadDir:   cfg.Download.OutputDir,
		MaxUploadSize: cfg.MaxUploadBytes(),
		EditInterval:  cfg.EditInterval(),
		LinkChecker:   resolver.IsVideoURL,
	})
	bot.RegisterHandlers(b, svc)

	log.Printf("tg-video-bot v%s started, upload limit %d MiB", version, cfg.Download.MaxUploadMiB)
	b.Start()
}
