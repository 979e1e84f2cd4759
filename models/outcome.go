package models

// OutcomeStatus — итог обработки аккаунта за цикл.
type OutcomeStatus string

const (
	StatusFarmed            OutcomeStatus = "farmed"
	StatusUpgraded          OutcomeStatus = "upgraded"
	StatusNothingAffordable OutcomeStatus = "nothing_affordable"
	StatusUpgradesFailed    OutcomeStatus = "upgrades_failed"
	StatusFarmFailed        OutcomeStatus = "farm_failed"
	StatusLoginFailed       OutcomeStatus = "login_failed"
	StatusPanicked          OutcomeStatus = "panicked"
)

// Outcome — результат одного аккаунта, собирается пулом и отдаётся планировщику.
type Outcome struct {
	Account int           `json:"account"`
	Status  OutcomeStatus `json:"status"`
	Message string        `json:"message,omitempty"`
	Claimed bool          `json:"claimed"`
	Bought  []string      `json:"bought,omitempty"`
}

// OK — аккаунт дошёл до конца процедуры без жёсткой ошибки.
func (o Outcome) OK() bool {
	switch o.Status {
	case StatusFarmed, StatusUpgraded, StatusNothingAffordable:
		return true
	}
	return false
}
