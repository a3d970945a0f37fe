package merchant

import (
	"strings"
	"time"
)

// Форматы локальной даты-времени, которые принимает форма создания:
// flatpickr отдаёт "2006-01-02 15:04", datetime-local - с "T" посередине,
// опционально с секундами. Интерпретация в локальной таймзоне.
var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseLocalDateTime разбирает введённую дату-время. Невалидная строка
// даёт nil: поле уходит в payload как отсутствующее, а не ломает форму.
func ParseLocalDateTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Сначала полный ISO с таймзоной (так дату мог сохранить бекенд)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}
