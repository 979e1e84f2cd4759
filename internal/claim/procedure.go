// Package claim — ежедневная процедура аккаунта: бонус, добыча, покупка улучшений.
package claim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ranch_farm/models"
	"ranch_farm/pkg/game"

	"go.uber.org/zap"
)

const (
	MineAmount = 100
	FeedAmount = 100
)

// API — игровые вызовы одного аккаунта. Реализуется *game.Client.
type API interface {
	DailyStreakState(ctx context.Context) (*game.Response, error)
	ClaimDailyBonus(ctx context.Context) (*game.Response, error)
	MiningAndFeeding(ctx context.Context, mine, feed int) (*game.Response, error)
	PurchasableUpgrades(ctx context.Context) (*game.Response, error)
	BuyUpgrade(ctx context.Context, upgradeID json.RawMessage) (*game.Response, error)
}

// Procedure выполняет полный проход по одному аккаунту. Повторов нет:
// каждый запрос делается не более одного раза за цикл.
type Procedure struct {
	CoinLimit float64
	Log       *zap.Logger
}

// Run проходит шаги строго по порядку и никогда не возвращает ошибку наверх.
func (p *Procedure) Run(ctx context.Context, account models.Account, api API) models.Outcome {
	log := p.Log.With(zap.Int("account", account.Ordinal))
	out := models.Outcome{Account: account.Ordinal}

	log.Info("Вход в аккаунт")
	if account.Proxy != nil {
		log.Info("Используется прокси", zap.String("proxy", account.Proxy.Raw))
	}

	state, err := api.DailyStreakState(ctx)
	if err != nil || !state.OK() {
		log.Error("Не удалось войти", zap.Error(err), zap.Int("status", statusOf(state)))
		return withMessage(out, models.StatusLoginFailed, "login failed")
	}
	var streak models.StreakState
	if err := state.Decode(&streak); err != nil {
		log.Error("Не удалось войти: некорректный ответ", zap.Error(err), zap.String("body", state.Text()))
		return withMessage(out, models.StatusLoginFailed, "login failed: malformed state")
	}

	if streak.IsTodayClaimed {
		log.Info("Вход выполнен, награда за сегодня уже получена")
	} else {
		log.Info("Вход выполнен, награда за сегодня ещё не получена")
		out.Claimed = p.claimBonus(ctx, log, api)
	}

	farm, err := api.MiningAndFeeding(ctx, MineAmount, FeedAmount)
	switch {
	case err != nil:
		log.Error("Добыча и кормление не удались", zap.Error(err))
		return withMessage(out, models.StatusFarmFailed, err.Error())
	case farm.OK():
		var data any
		if err := json.Unmarshal(farm.Body, &data); err != nil {
			log.Warn("Добыча и кормление выполнены, но ответ не JSON", zap.String("body", farm.Text()))
		} else {
			log.Info("Добыча и кормление выполнены", zap.Any("result", data))
		}
		return withMessage(out, models.StatusFarmed, farm.Text())
	case farm.StatusCode == http.StatusInternalServerError:
		log.Warn("Недостаточно энергии для добычи и кормления")
		return p.buyUpgrades(ctx, log, api, out)
	default:
		log.Error("Добыча и кормление не удались",
			zap.Int("status", farm.StatusCode),
			zap.String("body", farm.Text()))
		return withMessage(out, models.StatusFarmFailed, farm.Text())
	}
}

// claimBonus: любой неуспех считается гонкой «награда уже забрана».
func (p *Procedure) claimBonus(ctx context.Context, log *zap.Logger, api API) bool {
	res, err := api.ClaimDailyBonus(ctx)
	if err != nil || !res.OK() {
		log.Warn("Награда за сегодня уже получена", zap.Error(err))
		return false
	}
	var claim models.ClaimResult
	if err := res.Decode(&claim); err != nil {
		log.Warn("Награда получена, но ответ не JSON", zap.String("body", res.Text()))
		return true
	}
	log.Info(claim.Message)
	return true
}

func (p *Procedure) buyUpgrades(ctx context.Context, log *zap.Logger, api API, out models.Outcome) models.Outcome {
	res, err := api.PurchasableUpgrades(ctx)
	if err != nil || !res.OK() {
		log.Error("Не удалось получить список улучшений", zap.Error(err), zap.Int("status", statusOf(res)))
		return withMessage(out, models.StatusUpgradesFailed, "cannot get list of purchasable upgrades")
	}
	var offers []models.Upgrade
	if err := res.Decode(&offers); err != nil {
		log.Error("Не удалось разобрать список улучшений", zap.Error(err), zap.String("body", res.Text()))
		return withMessage(out, models.StatusUpgradesFailed, err.Error())
	}

	log.Info("Доступные улучшения", zap.Int("count", len(offers)))
	for _, offer := range offers {
		if !offer.Affordable(p.CoinLimit) {
			continue
		}
		log.Info("Покупка улучшения", zap.String("name", offer.Name), zap.Float64("cost", offer.Cost))
		bought, err := api.BuyUpgrade(ctx, offer.UpgradeID)
		if err != nil || !bought.OK() {
			log.Warn("Не удалось купить улучшение", zap.String("name", offer.Name), zap.Error(err))
			continue
		}
		log.Info("Улучшение куплено",
			zap.String("name", offer.Name),
			zap.Float64("cost", offer.Cost),
			zap.Float64("earn_per_hour", offer.EarnIncrement))
		out.Bought = append(out.Bought, offer.Name)
	}

	if len(out.Bought) == 0 {
		msg := fmt.Sprintf("no upgrades available for less than %v coins", p.CoinLimit)
		log.Info("Нет улучшений дешевле лимита", zap.Float64("coin_limit", p.CoinLimit))
		return withMessage(out, models.StatusNothingAffordable, msg)
	}
	return withMessage(out, models.StatusUpgraded, fmt.Sprintf("bought %d upgrade(s)", len(out.Bought)))
}

func statusOf(res *game.Response) int {
	if res == nil {
		return 0
	}
	return res.StatusCode
}

func withMessage(out models.Outcome, status models.OutcomeStatus, msg string) models.Outcome {
	out.Status = status
	out.Message = msg
	return out
}
