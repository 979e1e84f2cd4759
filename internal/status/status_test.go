package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ranch_farm/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestLastCycle_Empty проверяет 404 до первого цикла.
func TestLastCycle_Empty(t *testing.T) {
	r := NewRouter(&Board{}, zap.NewNop())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status/last", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("ожидался 404, получено %d", w.Code)
	}
}

// TestLastCycle_Report проверяет отдачу последнего отчёта и подсчёт итогов.
func TestLastCycle_Report(t *testing.T) {
	board := &Board{}
	now := time.Now()
	board.Publish(NewReport("c-1", now, now, []models.Outcome{
		{Account: 1, Status: models.StatusFarmed},
		{Account: 2, Status: models.StatusLoginFailed},
		{Account: 3, Status: models.StatusNothingAffordable},
	}))

	r := NewRouter(board, zap.NewNop())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status/last", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d", w.Code)
	}
	var got Report
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("ответ не JSON: %v", err)
	}
	if got.CycleID != "c-1" || got.Succeeded != 2 || got.Failed != 1 || len(got.Outcomes) != 3 {
		t.Fatalf("неверный отчёт: %+v", got)
	}
}

// TestHealth проверяет health-check.
func TestHealth(t *testing.T) {
	r := NewRouter(&Board{}, zap.NewNop())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d", w.Code)
	}
}
