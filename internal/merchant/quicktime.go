package merchant

import (
	"context"
	"errors"
	"time"
)

// ErrNoCloseTime - у ресторана не настроено время закрытия; вызывающий
// должен спросить пользователя, а не подставлять дефолт.
var ErrNoCloseTime = errors.New("restaurant has no close time configured")

// Быстрый выбор срока действия оффера в форме создания.

// ExpiryInMinutes - "через N минут от сейчас".
func ExpiryInMinutes(now time.Time, mins int) time.Time {
	return now.Add(time.Duration(mins) * time.Minute)
}

// ExpiryAtClock - ближайшее наступление времени hh:mm: сегодня, либо
// завтра, если сегодня это время уже прошло.
func ExpiryAtClock(now time.Time, hh, mm int) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), hh, mm, 0, 0, now.Location())
	if t.Before(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// ExpiryAtCloseTime - срок по времени закрытия ресторана. Профиль
// запрашивается по требованию; без настроенного close_time возвращается
// ErrNoCloseTime.
func (c *Controller) ExpiryAtCloseTime(ctx context.Context) (time.Time, error) {
	profile, err := c.LoadProfile(ctx)
	if err != nil {
		return time.Time{}, err
	}
	hh, mm, ok := profile.CloseClock()
	if !ok {
		return time.Time{}, ErrNoCloseTime
	}
	return ExpiryAtClock(c.now(), hh, mm), nil
}
