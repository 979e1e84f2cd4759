package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ranch_farm/internal/bootstrap"
	"ranch_farm/internal/claim"
	"ranch_farm/internal/config"
	"ranch_farm/internal/prompt"
	"ranch_farm/internal/scheduler"
	"ranch_farm/internal/status"
	"ranch_farm/models"
	"ranch_farm/pkg/game"
	"ranch_farm/pkg/proxy"
	"ranch_farm/pkg/storage"
	"ranch_farm/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		panic(err)
	}

	logger := setupLogger(cfg.Debug)
	defer logger.Sync()

	proxies, err := config.ReadProxies(cfg.ProxiesFile)
	if err != nil {
		logger.Fatal("Не удалось прочитать список прокси", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := prompt.NewConsole(os.Stdin, os.Stdout)
	app := newApp(cfg, proxies, console, logger)

	mode, err := console.Menu(ctx, "Choose mode:", "Create session", "Run claim process")
	if err == nil {
		switch mode {
		case "1":
			err = app.sessionMenu(ctx)
		case "2":
			err = app.claimProcess(ctx)
		default:
			logger.Error("Неверный выбор", zap.String("option", mode))
		}
	}

	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		logger.Info("Процесс прерван пользователем")
		return
	}
	if err != nil {
		logger.Error("Завершение с ошибкой", zap.Error(err))
	}
}

// app связывает компоненты для двух режимов работы.
type app struct {
	cfg       *models.Config
	console   *prompt.Console
	log       *zap.Logger
	bootstrap *bootstrap.Service
	tokens    *storage.TokenFile
	proxies   *proxy.Selector
}

func newApp(cfg *models.Config, proxyLines []string, console *prompt.Console, log *zap.Logger) *app {
	selector := proxy.NewSelector(proxyLines)
	sessions := storage.NewSessionDir(cfg.SessionsDir)
	tokens := storage.NewTokenFile(cfg.DataFile)

	launcher := &telegram.Launcher{
		ApiID:     cfg.ApiID,
		ApiHash:   cfg.ApiHash,
		Sessions:  sessions,
		Bot:       cfg.BotUsername,
		WebAppURL: cfg.WebAppURL,
		Prompt:    console,
		Log:       log.Named("telegram"),
	}
	if cfg.UseProxy {
		launcher.Proxies = selector
	}

	return &app{
		cfg:     cfg,
		console: console,
		log:     log,
		bootstrap: &bootstrap.Service{
			Client:   launcher,
			Sessions: sessions,
			Tokens:   tokens,
			Log:      log.Named("bootstrap"),
		},
		tokens:  tokens,
		proxies: selector,
	}
}

// sessionMenu — режим 1: создать одну сессию или выгрузить токены из существующих.
func (a *app) sessionMenu(ctx context.Context) error {
	opt, err := a.console.Menu(ctx, "Session:", "Create session", "Get query from session")
	if err != nil {
		return err
	}
	switch opt {
	case "1":
		phone, err := a.console.Ask(ctx, "Input phone number (+): ")
		if err != nil {
			return err
		}
		return a.bootstrap.CreateSession(ctx, phone)
	case "2":
		_, err := a.bootstrap.RefreshAll(ctx)
		return err
	default:
		a.log.Error("Неверный выбор", zap.String("option", opt))
		return nil
	}
}

// claimProcess — режим 2: бесконечный цикл сбора наград.
func (a *app) claimProcess(ctx context.Context) error {
	board := &status.Board{}
	if a.cfg.StatusAddr != "" {
		go a.serveStatus(ctx, board)
	}

	loop := &scheduler.Loop{
		Refresher: a.bootstrap,
		Tokens:    a.tokens,
		Proxies:   a.proxies,
		UseProxy:  a.cfg.UseProxy,
		Procedure: &claim.Procedure{CoinLimit: a.cfg.CoinLimit},
		NewAPI: func(account models.Account) claim.API {
			return game.NewClient(account.Token, game.Options{Proxy: account.Proxy})
		},
		Board:         board,
		Log:           a.log.Named("claim"),
		Countdown:     scheduler.DefaultCountdown,
		CountdownStep: time.Second,
		Pause:         scheduler.DefaultPause,
	}
	return loop.Run(ctx)
}

func (a *app) serveStatus(ctx context.Context, board *status.Board) {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{Addr: a.cfg.StatusAddr, Handler: status.NewRouter(board, a.log.Named("status"))}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.log.Info("Сервер статуса запущен", zap.String("addr", a.cfg.StatusAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error("Сервер статуса остановлен", zap.Error(err))
	}
}

// getConfigPath берёт путь из CONFIG_PATH, по умолчанию config.json.
func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.json"
}

func setupLogger(debug bool) *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(colorable.NewColorableStdout()),
		level,
	))
}
