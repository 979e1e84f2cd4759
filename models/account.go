package models

// Account — игровой аккаунт в рамках одного цикла.
// Ordinal начинается с 1 и совпадает с номером строки в data.txt.
type Account struct {
	Ordinal int    `json:"ordinal"`
	Token   string `json:"-"`
	Proxy   *Proxy `json:"proxy,omitempty"`
}
