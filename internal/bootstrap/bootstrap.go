// Package bootstrap создаёт Telegram-сессии и обновляет data.txt launch-токенами.
package bootstrap

import (
	"context"

	"go.uber.org/zap"
)

// SessionClient — вход по номеру и получение launch-токена. Реализуется *telegram.Launcher.
type SessionClient interface {
	Login(ctx context.Context, phone string) error
	LaunchToken(ctx context.Context, phone string) (string, error)
}

// SessionLister перечисляет номера с сохранёнными сессиями.
type SessionLister interface {
	Phones() ([]string, error)
}

// TokenSink принимает полученные токены.
type TokenSink interface {
	Append(token string) error
}

// Service обходит сессии строго последовательно: вход может ждать ввода в консоли.
type Service struct {
	Client   SessionClient
	Sessions SessionLister
	Tokens   TokenSink
	Log      *zap.Logger
}

// CreateSession выполняет вход для нового номера и сохраняет сессию.
func (s *Service) CreateSession(ctx context.Context, phone string) error {
	if err := s.Client.Login(ctx, phone); err != nil {
		s.Log.Error("Не удалось создать сессию", zap.String("phone", phone), zap.Error(err))
		return err
	}
	s.Log.Info("Сессия создана", zap.String("phone", phone))
	return nil
}

// RefreshAll получает токен для каждой сессии и дописывает его в data.txt.
// Ошибка одной сессии только логируется; возвращается число записанных токенов.
func (s *Service) RefreshAll(ctx context.Context) (int, error) {
	phones, err := s.Sessions.Phones()
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, phone := range phones {
		if ctx.Err() != nil {
			return saved, ctx.Err()
		}
		log := s.Log.With(zap.String("phone", phone))

		token, err := s.Client.LaunchToken(ctx, phone)
		if err != nil {
			log.Error("Ошибка получения данных запуска", zap.Error(err))
			continue
		}
		if err := s.Tokens.Append(token); err != nil {
			log.Error("Не удалось сохранить токен", zap.Error(err))
			continue
		}
		saved++
		log.Info("Данные запуска сохранены")
	}
	return saved, nil
}
