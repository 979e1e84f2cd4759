package claim

import (
	"context"
	"fmt"

	"ranch_farm/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task — работа над одним аккаунтом внутри пула.
type Task func(ctx context.Context, account models.Account) models.Outcome

// RunAll запускает task для всех аккаунтов одновременно и ждёт завершения каждого.
// Паника в одном воркере превращается в его Outcome и не мешает остальным.
// Результаты возвращаются в порядке аккаунтов.
func RunAll(ctx context.Context, log *zap.Logger, accounts []models.Account, task Task) []models.Outcome {
	outcomes := make([]models.Outcome, len(accounts))
	if len(accounts) == 0 {
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(len(accounts))
	for i, account := range accounts {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					log.Error("Воркер аккаунта упал", zap.Int("account", account.Ordinal), zap.Any("panic", r))
					outcomes[i] = models.Outcome{
						Account: account.Ordinal,
						Status:  models.StatusPanicked,
						Message: fmt.Sprint(r),
					}
				}
			}()
			outcomes[i] = task(ctx, account)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
