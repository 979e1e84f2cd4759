package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// TokenFile — плоский файл launch-токенов (data.txt), одна строка на токен.
// Файл только дописывается; дубликаты между циклами допустимы.
type TokenFile struct {
	Path string
	mu   sync.Mutex
}

// NewTokenFile создаёт хранилище токенов поверх файла.
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{Path: path}
}

// Append дописывает токен отдельной строкой.
func (f *TokenFile) Append(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("пустой токен")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("открытие %s: %w", f.Path, err)
	}
	if _, err := file.WriteString(token + "\n"); err != nil {
		file.Close()
		return fmt.Errorf("запись в %s: %w", f.Path, err)
	}
	return file.Close()
}

// Load читает все токены по порядку. Отсутствующий файл — пустой список.
func (f *TokenFile) Load() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tokens, err := ReadLines(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return tokens, err
}
