package telegram

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// CredentialPrompt запрашивает у оператора одноразовый код и пароль 2FA.
// Вызывается синхронно; реализация не обязана быть консольной.
type CredentialPrompt interface {
	Code(ctx context.Context, phone string) (string, error)
	Password(ctx context.Context, phone string) (string, error)
}

// promptAuthenticator реализует auth.UserAuthenticator поверх CredentialPrompt.
type promptAuthenticator struct {
	phone  string
	prompt CredentialPrompt
}

var _ auth.UserAuthenticator = promptAuthenticator{}

func (a promptAuthenticator) Phone(ctx context.Context) (string, error) {
	return a.phone, nil
}

func (a promptAuthenticator) Password(ctx context.Context) (string, error) {
	return a.prompt.Password(ctx, a.phone)
}

func (a promptAuthenticator) Code(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
	return a.prompt.Code(ctx, a.phone)
}

func (a promptAuthenticator) AcceptTermsOfService(ctx context.Context, tos tg.HelpTermsOfService) error {
	return nil
}

// SignUp: регистрация новых аккаунтов не поддерживается.
func (a promptAuthenticator) SignUp(ctx context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.Errorf("номер %s не зарегистрирован в Telegram", a.phone)
}

// authFlow возвращает поток входа, который спрашивает код только если сессии нет.
func authFlow(phone string, prompt CredentialPrompt) auth.Flow {
	return auth.NewFlow(promptAuthenticator{phone: phone, prompt: prompt}, auth.SendCodeOptions{})
}
