// Package status хранит итог последнего цикла и отдаёт его по HTTP.
package status

import (
	"sync"
	"time"

	"ranch_farm/models"
)

// Report — итог одного цикла сбора наград.
type Report struct {
	CycleID    string           `json:"cycle_id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Tokens     int              `json:"tokens"`
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	Outcomes   []models.Outcome `json:"outcomes"`
}

// NewReport подсчитывает успешные и неуспешные аккаунты.
func NewReport(cycleID string, started, finished time.Time, outcomes []models.Outcome) Report {
	r := Report{
		CycleID:    cycleID,
		StartedAt:  started,
		FinishedAt: finished,
		Tokens:     len(outcomes),
		Outcomes:   outcomes,
	}
	for _, o := range outcomes {
		if o.OK() {
			r.Succeeded++
		} else {
			r.Failed++
		}
	}
	return r
}

// Board — последний опубликованный отчёт. Пишет планировщик, читает HTTP.
type Board struct {
	mu   sync.RWMutex
	last *Report
}

// Publish заменяет последний отчёт.
func (b *Board) Publish(r Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = &r
}

// Last возвращает копию последнего отчёта.
func (b *Board) Last() (Report, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.last == nil {
		return Report{}, false
	}
	return *b.last, true
}
