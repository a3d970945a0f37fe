// Package foodyapi - типизированный клиент внешнего FOODY бекенда.
//
// Бекенд этому репозиторию не принадлежит: клиент только ходит по его
// REST-контракту (offers, reserve, merchant profile/offers/csv, upload).
// Merchant-запросы несут credential pair одним заголовком (X-Foody-Key);
// любой не-2xx ответ превращается в StatusError со статусом и телом.
//
// Таймауты и ретраи клиент свои не навязывает - как и browser fetch,
// он полагается на переданный http.Client и context вызывающего.
package foodyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Haleralex/foodyhub/internal/domain"
)

// DefaultKeyHeader - заголовок с API ключом мерчанта.
const DefaultKeyHeader = "X-Foody-Key"

// Client - REST клиент бекенда.
type Client struct {
	baseURL    string
	keyHeader  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймауты, транспорт, тесты).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithKeyHeader подменяет имя заголовка с ключом.
func WithKeyHeader(name string) Option {
	return func(c *Client) { c.keyHeader = name }
}

// WithLogger подменяет логгер.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient создаёт клиент для бекенда по базовому URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		keyHeader:  DefaultKeyHeader,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает базовый адрес бекенда.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ============================================
// Wire Types
// ============================================

// ReserveRequest - публичное бронирование оффера.
type ReserveRequest struct {
	OfferID domain.ID `json:"offer_id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
}

// RegisterRequest - публичная регистрация ресторана.
type RegisterRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateOfferRequest - создание оффера мерчантом.
//
// QtyLeft при создании всегда равен QtyTotal: частичный остаток на старте
// не поддерживается. ExpiresAt отсутствует, если дата не распарсилась.
type CreateOfferRequest struct {
	RestaurantID       domain.ID  `json:"restaurant_id"`
	Title              string     `json:"title"`
	PriceCents         int64      `json:"price_cents"`
	OriginalPriceCents int64      `json:"original_price_cents"`
	QtyTotal           int        `json:"qty_total"`
	QtyLeft            int        `json:"qty_left"`
	ExpiresAt          *time.Time `json:"expires_at"`
	ImageURL           *string    `json:"image_url"`
	Description        *string    `json:"description"`
	Category           *string    `json:"category,omitempty"`
}

// ============================================
// Public Endpoints
// ============================================

// ListOffers возвращает все активные офферы.
func (c *Client) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	var offers []domain.Offer
	if err := c.do(ctx, http.MethodGet, "/api/v1/offers", nil, nil, &offers, nil); err != nil {
		return nil, err
	}
	return offers, nil
}

// Reserve бронирует оффер от имени покупателя.
func (c *Client) Reserve(ctx context.Context, req ReserveRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/public/reserve", nil, req, nil, nil)
}

// ============================================
// Merchant Endpoints
// ============================================

// Register регистрирует новый ресторан и возвращает credential pair.
// Ключ выдаётся один раз; восстановить его позже нельзя.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (domain.Credentials, error) {
	var creds domain.Credentials
	if err := c.do(ctx, http.MethodPost, "/api/v1/merchant/register_public", nil, req, &creds, nil); err != nil {
		return domain.Credentials{}, err
	}
	if !creds.IsComplete() {
		return domain.Credentials{}, ErrBadRegisterResponse
	}
	return creds, nil
}

// Profile читает профиль ресторана.
func (c *Client) Profile(ctx context.Context, creds domain.Credentials) (domain.RestaurantProfile, error) {
	q := url.Values{"restaurant_id": {string(creds.RestaurantID)}}
	var p domain.RestaurantProfile
	if err := c.do(ctx, http.MethodGet, "/api/v1/merchant/profile", q, nil, &p, &creds); err != nil {
		return domain.RestaurantProfile{}, err
	}
	return p, nil
}

// SaveProfile отправляет полный профиль и возвращает сырой ответ бекенда
// как есть - он показывается пользователю для прозрачности.
func (c *Client) SaveProfile(ctx context.Context, creds domain.Credentials, p domain.RestaurantProfile) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/v1/merchant/profile", nil, p, &raw, &creds); err != nil {
		return nil, err
	}
	return raw, nil
}

// MerchantOffers возвращает офферы мерчанта через scoped endpoint.
// В некоторых деплоях endpoint отсутствует - фоллбек на общий список
// решается уровнем выше (merchant.Controller).
func (c *Client) MerchantOffers(ctx context.Context, creds domain.Credentials) ([]domain.Offer, error) {
	q := url.Values{"restaurant_id": {string(creds.RestaurantID)}}
	var offers []domain.Offer
	if err := c.do(ctx, http.MethodGet, "/api/v1/merchant/offers", q, nil, &offers, &creds); err != nil {
		return nil, err
	}
	return offers, nil
}

// CreateOffer создаёт новый оффер.
func (c *Client) CreateOffer(ctx context.Context, creds domain.Credentials, req CreateOfferRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/merchant/offers", nil, req, nil, &creds)
}

// ExportCSV скачивает CSV офферов мерчанта в w.
// Формирование CSV целиком на стороне бекенда.
func (c *Client) ExportCSV(ctx context.Context, creds domain.Credentials, w io.Writer) error {
	q := url.Values{"restaurant_id": {string(creds.RestaurantID)}}
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/merchant/offers/csv", q, nil, &creds)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// ============================================
// Upload
// ============================================

// uploadResponse - ответ /upload.
type uploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key,omitempty"`
}

// Upload отправляет фото multipart'ом и возвращает публичный URL.
// Вызывается до создания оффера; URL подставляется в image_url.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload: decode response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("upload: response has no url")
	}
	return out.URL, nil
}

// ============================================
// Internals
// ============================================

// newRequest собирает запрос: URL с query, JSON-тело, ключ мерчанта.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any, creds *domain.Credentials) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds != nil && creds.APIKey != "" {
		req.Header.Set(c.keyHeader, creds.APIKey)
	}
	return req, nil
}

// do выполняет запрос и декодирует JSON ответа в out (если out != nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, creds *domain.Credentials) error {
	req, err := c.newRequest(ctx, method, path, query, body, creds)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		// Тело не нужно, но дочитываем для переиспользования соединения
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// checkStatus превращает не-2xx ответ в StatusError с телом.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}
