package telegram

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
)

const (
	launchDataMarker = "#tgWebAppData="
	versionMarker    = "&tgWebAppVersion="
	webAppPlatform   = "android"
)

// webAppAPI — часть tg.Client, нужная для открытия веб-приложения бота.
type webAppAPI interface {
	ContactsResolveUsername(ctx context.Context, request *tg.ContactsResolveUsernameRequest) (*tg.ContactsResolvedPeer, error)
	MessagesRequestWebView(ctx context.Context, request *tg.MessagesRequestWebViewRequest) (*tg.WebViewResultURL, error)
}

// ExtractLaunchData вырезает подписанные данные из фрагмента URL веб-приложения:
// всё между #tgWebAppData= и &tgWebAppVersion=, после percent-декодирования.
func ExtractLaunchData(rawURL string) (string, error) {
	_, fragment, ok := strings.Cut(rawURL, launchDataMarker)
	if !ok {
		return "", errors.Errorf("в URL нет %s", launchDataMarker)
	}
	data, _, _ := strings.Cut(fragment, versionMarker)
	if data == "" {
		return "", errors.New("пустые данные запуска")
	}
	return unquote(data), nil
}

// unquote декодирует корректные %XX и оставляет битые последовательности как есть.
// '+' не превращается в пробел: в подписанных данных он значим.
func unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// requestLaunchData находит бота по username, открывает его веб-приложение
// и возвращает данные запуска.
func requestLaunchData(ctx context.Context, api webAppAPI, botUsername, webAppURL string) (string, error) {
	resolved, err := api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: botUsername})
	if err != nil {
		return "", errors.Wrapf(err, "не удалось найти бота %s", botUsername)
	}
	bot, err := findBot(resolved)
	if err != nil {
		return "", err
	}

	view, err := api.MessagesRequestWebView(ctx, &tg.MessagesRequestWebViewRequest{
		Peer:        &tg.InputPeerUser{UserID: bot.ID, AccessHash: bot.AccessHash},
		Bot:         &tg.InputUser{UserID: bot.ID, AccessHash: bot.AccessHash},
		FromBotMenu: false,
		Platform:    webAppPlatform,
		URL:         webAppURL,
	})
	if err != nil {
		return "", errors.Wrap(err, "открытие веб-приложения")
	}
	return ExtractLaunchData(view.URL)
}

// findBot выбирает из ответа пользователя, на которого указывает Peer.
func findBot(resolved *tg.ContactsResolvedPeer) (*tg.User, error) {
	peer, ok := resolved.Peer.(*tg.PeerUser)
	if !ok {
		return nil, errors.Errorf("username указывает не на пользователя: %T", resolved.Peer)
	}
	for _, u := range resolved.Users {
		if user, ok := u.(*tg.User); ok && user.ID == peer.UserID {
			return user, nil
		}
	}
	return nil, errors.Errorf("пользователь %d отсутствует в ответе", peer.UserID)
}
