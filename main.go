package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/access"
	"github.com/kyzzavilable/jaseb-bot/internal/autoshare"
	"github.com/kyzzavilable/jaseb-bot/internal/config"
	"github.com/kyzzavilable/jaseb-bot/internal/cooldown"
	"github.com/kyzzavilable/jaseb-bot/internal/entitlement"
	"github.com/kyzzavilable/jaseb-bot/internal/fanout"
	"github.com/kyzzavilable/jaseb-bot/internal/handlers"
	"github.com/kyzzavilable/jaseb-bot/internal/middleware"
	"github.com/kyzzavilable/jaseb-bot/internal/relay"
	"github.com/kyzzavilable/jaseb-bot/internal/telegram"
	"github.com/kyzzavilable/jaseb-bot/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	st, err := store.Open(ctx, store.Options{
		DataFile:      cfg.DataFile,
		RedisAddr:     cfg.RedisAddr(),
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		PostgresDSN:   cfg.PostgresDSN,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("state store open failed")
	}
	defer st.Close()

	httpClient := &http.Client{
		Timeout: 10 * time.Minute,
	}
	pollTimeout := 50 * time.Second

	b, err := bot.New(
		cfg.BotToken,
		bot.WithHTTPClient(pollTimeout, httpClient),
		bot.WithAllowedUpdates(bot.AllowedUpdates{"message", "callback_query", "my_chat_member"}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("bot init failed")
	}

	tr := telegram.NewClient(b)
	acl := access.New(cfg.OwnerIDs)
	gate := cooldown.NewGate(st)
	disp := fanout.NewDispatcher(tr)
	engine := entitlement.NewEngine(st, tr, acl, cfg.BackupDir)
	auto := autoshare.NewScheduler(st, disp)
	rl := relay.New(tr)

	h := handlers.NewHandlers(cfg, st, tr, acl, gate, disp, engine, auto, rl)
	middlewares := middleware.New(st, acl)

	handlerChain := middlewares.BlacklistMiddleware(
		middlewares.AnalyzeMessageMiddleware(
			h.MainHandler,
		),
	)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, handlerChain)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, handlerChain)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.MyChatMember != nil
	}, handlerChain)

	go engine.RunSweep(ctx)
	go auto.Run(ctx)

	log.Info().
		Str("developer", cfg.Developer).
		Str("version", cfg.Version).
		Str("channel", cfg.ChannelURL).
		Msg("BOT JASEB ACTIVE")

	b.Start(ctx)
}
