// Package proxy разбирает строки proxies.txt и закрепляет прокси за аккаунтами.
package proxy

import (
	"hash/fnv"
	"strings"

	"ranch_farm/models"
)

// Parse разбирает строку вида user:pass@host:port или host:port.
// Второе значение false означает «работать без прокси», а не ошибку.
func Parse(line string) (*models.Proxy, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	parts := strings.Split(line, "@")
	switch len(parts) {
	case 1:
		host, port, ok := splitHostPort(parts[0])
		if !ok {
			return nil, false
		}
		return &models.Proxy{Raw: line, Host: host, Port: port}, true
	case 2:
		login, password, ok := strings.Cut(parts[0], ":")
		if !ok {
			return nil, false
		}
		host, port, ok := splitHostPort(parts[1])
		if !ok {
			return nil, false
		}
		return &models.Proxy{Raw: line, Host: host, Port: port, Login: login, Password: password}, true
	default:
		return nil, false
	}
}

// splitHostPort делит по последнему двоеточию, порт обязателен.
func splitHostPort(s string) (string, string, bool) {
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// Selector закрепляет прокси за аккаунтом по правилу index mod len.
// Для Telegram-сессий индекс считается из номера телефона.
type Selector struct {
	lines []string
}

// NewSelector создаёт селектор поверх упорядоченного списка строк.
func NewSelector(lines []string) *Selector {
	return &Selector{lines: lines}
}

// Len возвращает размер списка.
func (s *Selector) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lines)
}

// Pick выбирает прокси по произвольному неотрицательному индексу.
func (s *Selector) Pick(index int) (*models.Proxy, bool) {
	if s.Len() == 0 || index < 0 {
		return nil, false
	}
	return Parse(s.lines[index%len(s.lines)])
}

// ForAccount — выбор для цикла сбора наград: порядковый номер аккаунта mod len.
func (s *Selector) ForAccount(ordinal int) (*models.Proxy, bool) {
	return s.Pick(ordinal)
}

// ForPhone — выбор для Telegram-сессии: FNV-1a(phone) mod len.
func (s *Selector) ForPhone(phone string) (*models.Proxy, bool) {
	return s.Pick(PhoneIndex(phone))
}

// PhoneIndex стабильно отображает номер телефона в неотрицательный индекс.
func PhoneIndex(phone string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(phone))
	return int(h.Sum32() & 0x7fffffff)
}
