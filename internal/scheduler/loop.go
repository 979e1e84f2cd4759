// Package scheduler — бесконечный цикл: обновить токены, обработать аккаунты, подождать.
package scheduler

import (
	"context"
	"time"

	"ranch_farm/internal/claim"
	"ranch_farm/internal/common"
	"ranch_farm/internal/status"
	"ranch_farm/models"
	"ranch_farm/pkg/proxy"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultCountdown = 10
	DefaultPause     = 600 * time.Second
)

// Refresher дописывает свежие токены из всех сессий.
type Refresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

// TokenSource отдаёт все токены из data.txt, включая дубликаты.
type TokenSource interface {
	Load() ([]string, error)
}

// APIFactory создаёт игровой клиент аккаунта.
type APIFactory func(account models.Account) claim.API

// Loop — планировщик режима «сбор наград». Курсоров нет: каждый цикл
// перечитывает data.txt целиком и обрабатывает все строки.
type Loop struct {
	Refresher Refresher
	Tokens    TokenSource
	Proxies   *proxy.Selector
	UseProxy  bool
	Procedure *claim.Procedure
	NewAPI    APIFactory
	Board     *status.Board
	Log       *zap.Logger

	Countdown     int
	CountdownStep time.Duration
	Pause         time.Duration
}

// Run крутит циклы до отмены контекста. Ошибки цикла не прерывают работу.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunCycle(ctx)

		err := common.Countdown(ctx, l.Countdown, l.CountdownStep, func(n int) {
			l.Log.Info("Цикл завершён, ожидание", zap.Int("seconds", n))
		})
		if err != nil {
			return err
		}
		l.Log.Info("====================================================")
		l.Log.Info("Повтор через паузу", zap.Duration("pause", l.Pause))
		if err := common.WaitWithCancellation(ctx, l.Pause); err != nil {
			return err
		}
	}
}

// RunCycle выполняет один проход и возвращает итоги по аккаунтам.
func (l *Loop) RunCycle(ctx context.Context) []models.Outcome {
	cycleID := uuid.NewString()
	log := l.Log.With(zap.String("cycle", cycleID))
	started := time.Now()

	if l.Refresher != nil {
		saved, err := l.Refresher.RefreshAll(ctx)
		if err != nil {
			log.Error("Не удалось обновить токены из сессий", zap.Error(err))
		} else {
			log.Info("Токены из сессий обновлены", zap.Int("saved", saved))
		}
	}

	tokens, err := l.Tokens.Load()
	if err != nil {
		log.Error("Не удалось прочитать токены", zap.Error(err))
		return nil
	}
	if len(tokens) == 0 {
		log.Warn("Нет токенов для обработки")
	}

	accounts := l.accounts(log, tokens)
	procedure := *l.Procedure
	procedure.Log = log
	outcomes := claim.RunAll(ctx, log, accounts, func(ctx context.Context, account models.Account) models.Outcome {
		return procedure.Run(ctx, account, l.NewAPI(account))
	})

	report := status.NewReport(cycleID, started, time.Now(), outcomes)
	log.Info("Цикл обработан",
		zap.Int("accounts", report.Tokens),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	if l.Board != nil {
		l.Board.Publish(report)
	}
	return outcomes
}

func (l *Loop) accounts(log *zap.Logger, tokens []string) []models.Account {
	if l.UseProxy && l.Proxies.Len() == 0 {
		log.Warn("use_proxy включён, но список прокси пуст, работаем без прокси")
	}
	accounts := make([]models.Account, len(tokens))
	for i, token := range tokens {
		accounts[i] = models.Account{Ordinal: i + 1, Token: token}
		if !l.UseProxy {
			continue
		}
		if p, ok := l.Proxies.ForAccount(i + 1); ok {
			accounts[i].Proxy = p
		} else if l.Proxies.Len() > 0 {
			log.Warn("Некорректная строка прокси, аккаунт без прокси", zap.Int("account", i+1))
		}
	}
	return accounts
}
