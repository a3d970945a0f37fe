package foodyapi

import (
	"errors"
	"fmt"
)

// ErrBadRegisterResponse - бекенд ответил 2xx, но без пары ключей.
var ErrBadRegisterResponse = errors.New("register response missing restaurant_id or api_key")

// StatusError - единый вид ошибки для не-2xx ответов бекенда.
//
// Несёт статус-код, статусную строку и тело ответа; текст совпадает с тем,
// что показывалось в браузерной версии: "404 Not Found — <body>".
type StatusError struct {
	StatusCode int
	Status     string // полная статусная строка, "404 Not Found"
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s — %s", e.Status, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
