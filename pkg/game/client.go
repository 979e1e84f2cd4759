// Package game — HTTP-клиент игрового API ранчо.
package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"ranch_farm/models"

	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"
)

const (
	BaseURL = "https://ranch-api.kuroro.com"

	pathStreakState = "/api/DailyStreak/GetState"
	pathClaimBonus  = "/api/DailyStreak/ClaimDailyBonus"
	pathMineFeed    = "/api/Clicks/MiningAndFeeding"
	pathUpgrades    = "/api/Upgrades/GetPurchasableUpgrades"
	pathBuyUpgrade  = "/api/Upgrades/BuyUpgrade"

	userAgent = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Mobile Safari/537.36"
)

// headers — шаблон заголовков браузера. Меняется только Authorization.
var headers = map[string]string{
	"Accept":             "*/*",
	"Accept-Encoding":    "gzip, br",
	"Content-Type":       "application/json",
	"Origin":             "https://ranch.kuroro.com",
	"Priority":           "u=1, i",
	"Referer":            "https://ranch.kuroro.com/",
	"Sec-Ch-Ua":          `"Chromium";v="124", "Google Chrome";v="124", "Not-A.Brand";v="99"`,
	"Sec-Ch-Ua-Mobile":   "?1",
	"Sec-Ch-Ua-Platform": `"Android"`,
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "same-site",
	"User-Agent":         userAgent,
}

// Response — статус и уже распакованное тело ответа.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK — сервер ответил 200.
func (r *Response) OK() bool {
	return r.StatusCode == 200
}

// Text возвращает тело как строку для журнала.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode разбирает JSON-тело в v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("некорректный JSON в ответе (%d): %w", r.StatusCode, err)
	}
	return nil
}

// Options настраивает клиента. Нулевое значение — боевой адрес без прокси.
type Options struct {
	BaseURL string
	Proxy   *models.Proxy
	Timeout time.Duration
}

// Client привязан к одному bearer-токену. Все методы выполняют ровно один запрос.
type Client struct {
	http *resty.Client
}

// NewClient создаёт клиента для одного аккаунта.
func NewClient(token string, opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = BaseURL
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetHeaders(headers).
		SetAuthToken(token)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.Proxy != nil {
		// resty принимает один адрес на оба протокола; https-туннель идёт через CONNECT
		c.SetProxy(opts.Proxy.HTTP())
	}
	return &Client{http: c}
}

// DailyStreakState — GET /api/DailyStreak/GetState.
func (c *Client) DailyStreakState(ctx context.Context) (*Response, error) {
	return c.do(c.http.R().SetContext(ctx), "GET", pathStreakState)
}

// ClaimDailyBonus — POST /api/DailyStreak/ClaimDailyBonus.
func (c *Client) ClaimDailyBonus(ctx context.Context) (*Response, error) {
	return c.do(c.http.R().SetContext(ctx), "POST", pathClaimBonus)
}

// MiningAndFeeding — POST /api/Clicks/MiningAndFeeding.
func (c *Client) MiningAndFeeding(ctx context.Context, mine, feed int) (*Response, error) {
	body := map[string]int{"mineAmount": mine, "feedAmount": feed}
	return c.do(c.http.R().SetContext(ctx).SetBody(body), "POST", pathMineFeed)
}

// PurchasableUpgrades — GET /api/Upgrades/GetPurchasableUpgrades.
func (c *Client) PurchasableUpgrades(ctx context.Context) (*Response, error) {
	return c.do(c.http.R().SetContext(ctx), "GET", pathUpgrades)
}

// BuyUpgrade — POST /api/Upgrades/BuyUpgrade.
func (c *Client) BuyUpgrade(ctx context.Context, upgradeID json.RawMessage) (*Response, error) {
	body := map[string]json.RawMessage{"upgradeId": upgradeID}
	return c.do(c.http.R().SetContext(ctx).SetBody(body), "POST", pathBuyUpgrade)
}

func (c *Client) do(req *resty.Request, method, path string) (*Response, error) {
	res, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	body, err := decodeBody(res.Header().Get("Content-Encoding"), res.Body())
	if err != nil {
		return nil, fmt.Errorf("%s %s: распаковка ответа: %w", method, path, err)
	}
	return &Response{StatusCode: res.StatusCode(), Body: body}, nil
}

// decodeBody распаковывает br. gzip resty распаковывает сам.
func decodeBody(encoding string, raw []byte) ([]byte, error) {
	if len(raw) == 0 || !strings.EqualFold(strings.TrimSpace(encoding), "br") {
		return raw, nil
	}
	return io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
}
