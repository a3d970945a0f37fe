package merchant

import "github.com/Haleralex/foodyhub/internal/domain"

// Mode - грубое состояние дашборда. Переходов всего два: полная пара в
// хранилище даёт Authenticated, logout возвращает в Unauthenticated.
// Никакой серверной валидации при входе нет - валидность пары выясняется
// лениво, первым авторизованным запросом.
type Mode int

const (
	// ModeUnauthenticated - доступна только панель авторизации.
	ModeUnauthenticated Mode = iota
	// ModeAuthenticated - доступны все панели дашборда.
	ModeAuthenticated
)

// String возвращает имя режима.
func (m Mode) String() string {
	switch m {
	case ModeAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ModeFor - чистая функция перехода: режим целиком определяется
// наличием credential pair.
func ModeFor(creds domain.Credentials) Mode {
	if creds.IsComplete() {
		return ModeAuthenticated
	}
	return ModeUnauthenticated
}
