// Package config загружает config.json и список прокси.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"ranch_farm/models"
	"ranch_farm/pkg/storage"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultCoinLimit — потолок цены улучшения, если coin_limit не задан.
const DefaultCoinLimit = 5

// Load читает config.json. Переменные окружения перекрывают значения из файла,
// незаданные ключи получают значения по умолчанию. Явный coin_limit: 0 сохраняется.
func Load(path string) (*models.Config, error) {
	cfg := models.Config{CoinLimit: DefaultCoinLimit}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфига %s: %w", path, err)
	}
	return &cfg, nil
}

// ReadProxies читает список прокси. Отсутствующий файл — это пустой список.
func ReadProxies(path string) ([]string, error) {
	lines, err := storage.ReadLines(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return lines, err
}
