package models

import "fmt"

// Proxy описывает одну строку из proxies.txt после разбора.
type Proxy struct {
	Raw      string `json:"raw"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Addr возвращает host:port без схемы и учётных данных.
func (p *Proxy) Addr() string {
	return p.Host + ":" + p.Port
}

// HasAuth сообщает, заданы ли логин и пароль.
func (p *Proxy) HasAuth() bool {
	return p.Login != "" || p.Password != ""
}

// HTTP возвращает адрес прокси для http-запросов.
func (p *Proxy) HTTP() string {
	return p.endpoint("http")
}

// HTTPS возвращает адрес прокси для https-запросов.
func (p *Proxy) HTTPS() string {
	return p.endpoint("https")
}

func (p *Proxy) endpoint(scheme string) string {
	if p.HasAuth() {
		return fmt.Sprintf("%s://%s:%s@%s", scheme, p.Login, p.Password, p.Addr())
	}
	return fmt.Sprintf("%s://%s", scheme, p.Addr())
}
