// Package telegram — вход в Telegram по номеру и получение launch-данных веб-приложения игры.
package telegram

import (
	"github.com/go-faster/errors"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"

	"ranch_farm/models"
)

// Параметры устройства, которыми представляется клиент.
const (
	DeviceModel   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36 Edg/126.0.0.0"
	SystemVersion = "Win32"
	AppVersion    = "2.1.0 K"
)

// ClientOptions — всё, что нужно для клиента одного номера.
type ClientOptions struct {
	ApiID       int
	ApiHash     string
	SessionPath string
	Proxy       *models.Proxy
	Log         *zap.Logger
}

// NewClient создаёт клиента с файловой сессией и, при необходимости, SOCKS5-прокси.
func NewClient(opts ClientOptions) (*telegram.Client, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	options := telegram.Options{
		SessionStorage: &session.FileStorage{Path: opts.SessionPath},
		Logger:         log.Named("mtproto"),
		Device: telegram.DeviceConfig{
			DeviceModel:   DeviceModel,
			SystemVersion: SystemVersion,
			AppVersion:    AppVersion,
		},
	}

	if p := opts.Proxy; p != nil {
		var auth *proxy.Auth
		if p.HasAuth() {
			auth = &proxy.Auth{User: p.Login, Password: p.Password}
		}
		d, err := proxy.SOCKS5("tcp", p.Addr(), auth, proxy.Direct)
		if err != nil {
			return nil, errors.Wrap(err, "proxy dialer")
		}
		dc, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, errors.New("proxy dialer missing context")
		}
		options.Resolver = dcs.Plain(dcs.PlainOptions{Dial: dc.DialContext})
		log.Info("Telegram через прокси", zap.String("proxy", p.Addr()))
	}

	return telegram.NewClient(opts.ApiID, opts.ApiHash, options), nil
}
