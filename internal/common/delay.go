package common

import (
	"context"
	"time"
)

// WaitWithCancellation ждёт delay, но сразу возвращает ошибку контекста при отмене.
func WaitWithCancellation(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Countdown отсчитывает steps шагов по step, вызывая tick(оставшиеся шаги) перед каждым.
func Countdown(ctx context.Context, steps int, step time.Duration, tick func(remaining int)) error {
	for remaining := steps; remaining > 0; remaining-- {
		tick(remaining)
		if err := WaitWithCancellation(ctx, step); err != nil {
			return err
		}
	}
	return nil
}
