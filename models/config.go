package models

// Config — содержимое config.json. Загружается один раз за запуск.
type Config struct {
	ApiID       int     `json:"api_id" env:"API_ID" env-required:"true"`
	ApiHash     string  `json:"api_hash" env:"API_HASH" env-required:"true"`
	UseProxy    bool    `json:"use_proxy" env:"USE_PROXY" env-default:"false"`
	CoinLimit   float64 `json:"coin_limit" env:"COIN_LIMIT"`
	SessionsDir string  `json:"sessions_dir" env:"SESSIONS_DIR" env-default:"sessions"`
	DataFile    string  `json:"data_file" env:"DATA_FILE" env-default:"data.txt"`
	ProxiesFile string  `json:"proxies_file" env:"PROXIES_FILE" env-default:"proxies.txt"`
	BotUsername string  `json:"bot_username" env:"BOT_USERNAME" env-default:"KuroroRanchBot"`
	WebAppURL   string  `json:"webapp_url" env:"WEBAPP_URL" env-default:"https://ranch.kuroro.com/"`
	StatusAddr  string  `json:"status_addr" env:"STATUS_ADDR"`
	Debug       bool    `json:"debug" env:"DEBUG" env-default:"false"`
}
