package claim

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"ranch_farm/models"
	"ranch_farm/pkg/game"

	"go.uber.org/zap"
)

// fakeRanch — игровой сервер в памяти, считает вызовы по путям.
type fakeRanch struct {
	mu           sync.Mutex
	calls        map[string]int
	bought       []string
	claimed      bool
	claimCode    int
	farmCode     int
	farmBody     string
	upgrades     string
	upgradesCode int
	buyCode      int
}

func newFakeRanch() *fakeRanch {
	return &fakeRanch{
		calls:        map[string]int{},
		claimCode:    200,
		farmCode:     200,
		farmBody:     `{"ok":true}`,
		upgrades:     `[]`,
		upgradesCode: 200,
		buyCode:      200,
	}
}

func (f *fakeRanch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[r.URL.Path]++

	switch r.URL.Path {
	case "/api/DailyStreak/GetState":
		json.NewEncoder(w).Encode(map[string]any{"isTodayClaimed": f.claimed, "streak": 3})
	case "/api/DailyStreak/ClaimDailyBonus":
		w.WriteHeader(f.claimCode)
		if f.claimCode == http.StatusOK {
			w.Write([]byte(`{"message":"Daily bonus claimed"}`))
		} else {
			w.Write([]byte(`{"message":"Already claimed"}`))
		}
	case "/api/Clicks/MiningAndFeeding":
		w.WriteHeader(f.farmCode)
		w.Write([]byte(f.farmBody))
	case "/api/Upgrades/GetPurchasableUpgrades":
		w.WriteHeader(f.upgradesCode)
		w.Write([]byte(f.upgrades))
	case "/api/Upgrades/BuyUpgrade":
		data, _ := io.ReadAll(r.Body)
		var body struct {
			UpgradeID json.RawMessage `json:"upgradeId"`
		}
		json.Unmarshal(data, &body)
		f.bought = append(f.bought, string(body.UpgradeID))
		w.WriteHeader(f.buyCode)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeRanch) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func runAgainst(t *testing.T, f *fakeRanch, limit float64) models.Outcome {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	p := &Procedure{CoinLimit: limit, Log: zap.NewNop()}
	api := game.NewClient("token", game.Options{BaseURL: srv.URL})
	return p.Run(context.Background(), models.Account{Ordinal: 1, Token: "token"}, api)
}

// TestRun_ClaimsWhenUnclaimed проверяет ровно один запрос награды, если она не получена.
func TestRun_ClaimsWhenUnclaimed(t *testing.T) {
	f := newFakeRanch()
	out := runAgainst(t, f, 5)

	if n := f.count("/api/DailyStreak/ClaimDailyBonus"); n != 1 {
		t.Fatalf("ожидался 1 запрос награды, получено %d", n)
	}
	if !out.Claimed {
		t.Errorf("ожидался признак Claimed")
	}
	if out.Status != models.StatusFarmed {
		t.Errorf("ожидался статус farmed, получено %s", out.Status)
	}
}

// TestRun_SkipsClaimWhenClaimed проверяет отсутствие запроса награды, если она уже получена.
func TestRun_SkipsClaimWhenClaimed(t *testing.T) {
	f := newFakeRanch()
	f.claimed = true
	runAgainst(t, f, 5)

	if n := f.count("/api/DailyStreak/ClaimDailyBonus"); n != 0 {
		t.Fatalf("не ожидалось запросов награды, получено %d", n)
	}
	if n := f.count("/api/Clicks/MiningAndFeeding"); n != 1 {
		t.Fatalf("добыча должна выполняться всегда, получено %d", n)
	}
}

// TestRun_LoginFailedStops проверяет, что при неуспешном входе других запросов нет.
func TestRun_LoginFailedStops(t *testing.T) {
	f := newFakeRanch()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.URL.Path]++
		f.mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := &Procedure{CoinLimit: 5, Log: zap.NewNop()}
	out := p.Run(context.Background(), models.Account{Ordinal: 2}, game.NewClient("bad", game.Options{BaseURL: srv.URL}))

	if out.Status != models.StatusLoginFailed {
		t.Fatalf("ожидался login_failed, получено %s", out.Status)
	}
	if len(f.calls) != 1 || f.calls["/api/DailyStreak/GetState"] != 1 {
		t.Fatalf("ожидался только запрос состояния, получено %v", f.calls)
	}
}

// TestRun_BuysOnlyAffordable проверяет пример с потолком 5 и тремя предложениями.
func TestRun_BuysOnlyAffordable(t *testing.T) {
	f := newFakeRanch()
	f.claimed = true
	f.farmCode = http.StatusInternalServerError
	f.farmBody = "not enough energy"
	f.upgrades = `[
		{"upgradeId":"a","name":"Barn","cost":3,"earnIncrement":1,"canBePurchased":true},
		{"upgradeId":"b","name":"Silo","cost":10,"earnIncrement":4,"canBePurchased":true},
		{"upgradeId":"c","name":"Fence","cost":2,"earnIncrement":1,"canBePurchased":false}
	]`

	out := runAgainst(t, f, 5)

	if n := f.count("/api/Upgrades/GetPurchasableUpgrades"); n != 1 {
		t.Fatalf("ожидался 1 запрос списка улучшений, получено %d", n)
	}
	if len(f.bought) != 1 || f.bought[0] != `"a"` {
		t.Fatalf("ожидалась покупка только \"a\", получено %v", f.bought)
	}
	if out.Status != models.StatusUpgraded || len(out.Bought) != 1 || out.Bought[0] != "Barn" {
		t.Errorf("неверный итог: %+v", out)
	}
}

// TestRun_NothingAffordable проверяет итог, если ничего не куплено.
func TestRun_NothingAffordable(t *testing.T) {
	f := newFakeRanch()
	f.claimed = true
	f.farmCode = http.StatusInternalServerError
	f.upgrades = `[{"upgradeId":1,"name":"Silo","cost":5,"earnIncrement":4,"canBePurchased":true}]`

	out := runAgainst(t, f, 5)

	if n := f.count("/api/Upgrades/BuyUpgrade"); n != 0 {
		t.Fatalf("цена равна потолку, покупок быть не должно, получено %d", n)
	}
	if out.Status != models.StatusNothingAffordable {
		t.Errorf("ожидался nothing_affordable, получено %s", out.Status)
	}
}

// TestRun_FailedBuyCountsAsNothing проверяет, что неудачная покупка не считается купленной.
func TestRun_FailedBuyCountsAsNothing(t *testing.T) {
	f := newFakeRanch()
	f.claimed = true
	f.farmCode = http.StatusInternalServerError
	f.buyCode = http.StatusBadRequest
	f.upgrades = `[{"upgradeId":1,"name":"Barn","cost":1,"earnIncrement":1,"canBePurchased":true}]`

	out := runAgainst(t, f, 5)

	if n := f.count("/api/Upgrades/BuyUpgrade"); n != 1 {
		t.Fatalf("ожидалась 1 попытка покупки, получено %d", n)
	}
	if out.Status != models.StatusNothingAffordable {
		t.Errorf("ожидался nothing_affordable, получено %s", out.Status)
	}
}

// TestRun_FarmNotJSON проверяет, что не-JSON ответ 200 считается успехом.
func TestRun_FarmNotJSON(t *testing.T) {
	f := newFakeRanch()
	f.claimed = true
	f.farmBody = ""

	out := runAgainst(t, f, 5)
	if out.Status != models.StatusFarmed {
		t.Fatalf("ожидался farmed, получено %s", out.Status)
	}
}

// TestRun_FarmHardFailure проверяет, что прочие статусы не ведут к покупкам.
func TestRun_FarmHardFailure(t *testing.T) {
	f := newFakeRanch()
	f.claimed = true
	f.farmCode = http.StatusForbidden
	f.farmBody = "forbidden"

	out := runAgainst(t, f, 5)
	if out.Status != models.StatusFarmFailed || out.Message != "forbidden" {
		t.Fatalf("неверный итог: %+v", out)
	}
	if n := f.count("/api/Upgrades/GetPurchasableUpgrades"); n != 0 {
		t.Fatalf("список улучшений не должен запрашиваться, получено %d", n)
	}
}

// TestRun_ClaimRejected проверяет, что отказ в награде (её успел забрать
// параллельный запуск) не прерывает добычу.
func TestRun_ClaimRejected(t *testing.T) {
	f := newFakeRanch()
	f.claimCode = http.StatusBadRequest
	out := runAgainst(t, f, 5)

	if n := f.count("/api/DailyStreak/ClaimDailyBonus"); n != 1 {
		t.Fatalf("ожидался 1 запрос награды, получено %d", n)
	}
	if out.Claimed {
		t.Errorf("отклонённая награда не должна считаться полученной")
	}
	if n := f.count("/api/Clicks/MiningAndFeeding"); n != 1 {
		t.Fatalf("добыча должна выполняться после отказа, получено %d", n)
	}
	if out.Status != models.StatusFarmed {
		t.Errorf("ожидался статус farmed, получено %s", out.Status)
	}
}

// TestRun_UpgradeListFailed проверяет, что без списка улучшений покупок нет.
func TestRun_UpgradeListFailed(t *testing.T) {
	f := newFakeRanch()
	f.farmCode = http.StatusInternalServerError
	f.upgradesCode = http.StatusInternalServerError
	f.upgrades = `{"error":"oops"}`
	out := runAgainst(t, f, 1000)

	if out.Status != models.StatusUpgradesFailed {
		t.Fatalf("ожидался статус upgrades_failed, получено %s", out.Status)
	}
	if n := f.count("/api/Upgrades/GetPurchasableUpgrades"); n != 1 {
		t.Fatalf("ожидался 1 запрос списка, получено %d", n)
	}
	if n := f.count("/api/Upgrades/BuyUpgrade"); n != 0 {
		t.Fatalf("не ожидалось покупок, получено %d", n)
	}
}
