package models

import "encoding/json"

// StreakState — ответ /api/DailyStreak/GetState. Остальные поля не используются.
type StreakState struct {
	IsTodayClaimed bool `json:"isTodayClaimed"`
}

// ClaimResult — ответ /api/DailyStreak/ClaimDailyBonus.
type ClaimResult struct {
	Message string `json:"message"`
}

// Upgrade — предложение улучшения от сервера. Живёт в пределах одного цикла.
// UpgradeID хранится как есть, чтобы вернуть серверу тот же JSON-тип.
type Upgrade struct {
	UpgradeID      json.RawMessage `json:"upgradeId"`
	Name           string          `json:"name"`
	Cost           float64         `json:"cost"`
	EarnIncrement  float64         `json:"earnIncrement"`
	CanBePurchased bool            `json:"canBePurchased"`
}

// Affordable проверяет, можно ли покупать улучшение при заданном потолке.
func (u Upgrade) Affordable(ceiling float64) bool {
	return u.CanBePurchased && u.Cost < ceiling
}
