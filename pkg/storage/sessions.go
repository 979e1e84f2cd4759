package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SessionExt — расширение файла сессии. Имя файла без расширения — номер телефона.
const SessionExt = ".session"

// SessionDir — каталог с Telegram-сессиями, по одному файлу на номер.
type SessionDir struct {
	Dir string
}

// NewSessionDir создаёт хранилище поверх каталога.
func NewSessionDir(dir string) *SessionDir {
	return &SessionDir{Dir: dir}
}

// Ensure создаёт каталог, если его ещё нет.
func (s *SessionDir) Ensure() error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return fmt.Errorf("создание каталога сессий %s: %w", s.Dir, err)
	}
	return nil
}

// Path возвращает путь к файлу сессии номера.
func (s *SessionDir) Path(phone string) string {
	return filepath.Join(s.Dir, phone+SessionExt)
}

// Phones перечисляет номера, для которых есть сессия, в лексикографическом порядке.
func (s *SessionDir) Phones() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*"+SessionExt))
	if err != nil {
		return nil, err
	}
	phones := make([]string, 0, len(matches))
	for _, m := range matches {
		phones = append(phones, strings.TrimSuffix(filepath.Base(m), SessionExt))
	}
	sort.Strings(phones)
	return phones, nil
}
