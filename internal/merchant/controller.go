// Package merchant implements the dashboard client state: the credential
// pair lifecycle, profile and offer management, export and aggregates.
//
// Как и buyer, контроллер однопоточный: им управляют с одной горутины,
// списки офферов всегда заменяются целиком. Единственное персистентное
// состояние - credential pair в CredentialStore.
package merchant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Haleralex/foodyhub/internal/domain"
	"github.com/Haleralex/foodyhub/internal/foodyapi"
)

// Ошибки клиентских предусловий.
var (
	// ErrNotAuthenticated - операция требует входа.
	ErrNotAuthenticated = errors.New("not authenticated: register or login first")
	// ErrMissingCredentials - в логин-форме не обе половины пары.
	ErrMissingCredentials = errors.New("restaurant id and api key are required")
)

// API is the slice of the backend client the dashboard needs.
type API interface {
	Register(ctx context.Context, req foodyapi.RegisterRequest) (domain.Credentials, error)
	Profile(ctx context.Context, creds domain.Credentials) (domain.RestaurantProfile, error)
	SaveProfile(ctx context.Context, creds domain.Credentials, p domain.RestaurantProfile) (json.RawMessage, error)
	MerchantOffers(ctx context.Context, creds domain.Credentials) ([]domain.Offer, error)
	ListOffers(ctx context.Context) ([]domain.Offer, error)
	CreateOffer(ctx context.Context, creds domain.Credentials, req foodyapi.CreateOfferRequest) error
	ExportCSV(ctx context.Context, creds domain.Credentials, w io.Writer) error
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Controller держит состояние дашборда мерчанта.
type Controller struct {
	api      API
	store    CredentialStore
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time

	creds domain.Credentials
}

// Option настраивает Controller.
type Option func(*Controller)

// WithClock подменяет источник времени (для тестов quick-time).
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController создаёт контроллер и поднимает сохранённую пару из стора.
// Ошибка чтения стора не фатальна - дашборд стартует неавторизованным.
func NewController(api API, store CredentialStore, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		api:      api,
		store:    store,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	creds, err := store.Load()
	if err != nil {
		logger.Warn("credential store read failed, starting unauthenticated", slog.String("error", err.Error()))
		return c
	}
	c.creds = creds
	return c
}

// Mode возвращает текущий режим дашборда.
func (c *Controller) Mode() Mode {
	return ModeFor(c.creds)
}

// Credentials возвращает текущую пару (для экрана export/creds).
func (c *Controller) Credentials() domain.Credentials {
	return c.creds
}

// Now возвращает текущее время по часам контроллера.
func (c *Controller) Now() time.Time {
	return c.now()
}

// ============================================
// Auth Pane
// ============================================

// Register регистрирует новый ресторан. Пара персистится до того, как
// вернуться вызывающему: ключ показывается один раз и не восстанавливается,
// поэтому терять его из-за упавшего рендера нельзя.
func (c *Controller) Register(ctx context.Context, name, phone string) (domain.Credentials, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return domain.Credentials{}, fmt.Errorf("name and phone are required")
	}

	creds, err := c.api.Register(ctx, foodyapi.RegisterRequest{Name: name, Phone: phone})
	if err != nil {
		return domain.Credentials{}, err
	}

	if err := c.store.Save(creds); err != nil {
		return domain.Credentials{}, fmt.Errorf("persist credentials: %w", err)
	}
	c.creds = creds
	c.logger.Info("restaurant registered", slog.String("restaurant_id", string(creds.RestaurantID)))
	return creds, nil
}

// Login принимает пару, введённую пользователем, без похода на сервер:
// API ключ сам по себе и есть credential. Принимается любая непустая
// пара; валидность выяснится первым авторизованным запросом.
func (c *Controller) Login(restaurantID, apiKey string) error {
	creds := domain.Credentials{
		RestaurantID: domain.ID(strings.TrimSpace(restaurantID)),
		APIKey:       strings.TrimSpace(apiKey),
	}
	if !creds.IsComplete() {
		return ErrMissingCredentials
	}

	if err := c.store.Save(creds); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	c.creds = creds
	return nil
}

// Logout очищает пару в сторе и принудительно возвращает дашборд в
// Unauthenticated, из какой бы панели его ни вызвали.
func (c *Controller) Logout() error {
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	c.creds = domain.Credentials{}
	c.logger.Info("logged out")
	return nil
}

// HandleStartupURL обрабатывает маркер ?logout=1 в стартовом URL.
// Отдельный путь нужен, чтобы hard-logout срабатывал даже когда основной
// бандл клиента не загрузился: маркер обрабатывает минимальный bootstrap.
func (c *Controller) HandleStartupURL(rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, nil // мусорный URL маркером не считается
	}
	if u.Query().Get("logout") != "1" {
		return false, nil
	}
	if err := c.Logout(); err != nil {
		return true, err
	}
	return true, nil
}

// ============================================
// Profile Pane
// ============================================

// ProfileForm - поля формы профиля как их ввёл пользователь.
// Числовые поля строками: что не парсится, то уходит отсутствующим.
type ProfileForm struct {
	Name      string
	Phone     string
	Address   string
	Lat       string
	Lng       string
	CloseTime string
}

// LoadProfile запрашивает текущий профиль для заполнения формы.
func (c *Controller) LoadProfile(ctx context.Context) (domain.RestaurantProfile, error) {
	if c.Mode() != ModeAuthenticated {
		return domain.RestaurantProfile{}, ErrNotAuthenticated
	}
	return c.api.Profile(ctx, c.creds)
}

// SaveProfile отправляет полный профиль и возвращает сырой ответ бекенда
// для показа пользователю.
func (c *Controller) SaveProfile(ctx context.Context, form ProfileForm) (json.RawMessage, error) {
	if c.Mode() != ModeAuthenticated {
		return nil, ErrNotAuthenticated
	}

	profile := domain.RestaurantProfile{
		RestaurantID: c.creds.RestaurantID,
		Name:         strings.TrimSpace(form.Name),
		Phone:        strings.TrimSpace(form.Phone),
		Address:      strings.TrimSpace(form.Address),
		Lat:          domain.CoerceFloat(form.Lat),
		Lng:          domain.CoerceFloat(form.Lng),
		CloseTime:    strings.TrimSpace(form.CloseTime),
	}
	return c.api.SaveProfile(ctx, c.creds, profile)
}
