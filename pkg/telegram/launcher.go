package telegram

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"ranch_farm/pkg/proxy"
	"ranch_farm/pkg/storage"
)

// Launcher открывает сессии по номерам и получает launch-данные игры.
// Вызовы не должны выполняться параллельно: вход может ждать ввода оператора.
type Launcher struct {
	ApiID     int
	ApiHash   string
	Sessions  *storage.SessionDir
	Proxies   *proxy.Selector
	Bot       string
	WebAppURL string
	Prompt    CredentialPrompt
	Log       *zap.Logger
}

// Login создаёт сессию номера или проверяет существующую.
func (l *Launcher) Login(ctx context.Context, phone string) error {
	return l.run(ctx, phone, func(ctx context.Context, client *telegram.Client) error {
		return nil
	})
}

// LaunchToken входит по номеру и возвращает подписанные данные запуска веб-приложения.
func (l *Launcher) LaunchToken(ctx context.Context, phone string) (string, error) {
	var token string
	err := l.run(ctx, phone, func(ctx context.Context, client *telegram.Client) error {
		data, err := requestLaunchData(ctx, tg.NewClient(client), l.Bot, l.WebAppURL)
		if err != nil {
			return err
		}
		token = data
		return nil
	})
	return token, err
}

func (l *Launcher) run(ctx context.Context, phone string, fn func(ctx context.Context, client *telegram.Client) error) error {
	log := l.Log.With(zap.String("phone", phone))
	if err := l.Sessions.Ensure(); err != nil {
		return err
	}

	opts := ClientOptions{
		ApiID:       l.ApiID,
		ApiHash:     l.ApiHash,
		SessionPath: l.Sessions.Path(phone),
		Log:         log,
	}
	if p, ok := l.Proxies.ForPhone(phone); ok {
		opts.Proxy = p
		log.Info("Используется прокси", zap.String("proxy", p.Raw))
	}
	client, err := NewClient(opts)
	if err != nil {
		return err
	}

	return client.Run(ctx, func(ctx context.Context) error {
		if err := client.Auth().IfNecessary(ctx, authFlow(phone, l.Prompt)); err != nil {
			return errors.Wrap(err, "авторизация")
		}
		me, err := client.Self(ctx)
		if err != nil {
			return errors.Wrap(err, "получение профиля")
		}
		log.Info("Сессия активна",
			zap.String("name", me.FirstName+" "+me.LastName),
			zap.String("username", me.Username))
		return fn(ctx, client)
	})
}
