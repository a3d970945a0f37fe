package merchant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Haleralex/foodyhub/internal/domain"
	"github.com/Haleralex/foodyhub/internal/foodyapi"
)

// ============================================
// Offer Listing
// ============================================

// Source - каким путём получен список офферов.
//
// Фоллбек существует потому, что scoped endpoint доступен не во всех
// деплоях бекенда; переключение прозрачно для пользователя, но источник
// фиксируется явно, чтобы его видели логи и тесты.
type Source int

const (
	// SourceScoped - merchant-scoped endpoint.
	SourceScoped Source = iota
	// SourceFallback - общий список, отфильтрованный по restaurant_id.
	SourceFallback
)

// String возвращает имя источника.
func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "scoped"
}

// OffersResult - список офферов мерчанта плюс источник.
type OffersResult struct {
	Offers []domain.Offer
	Source Source
}

// LoadOffers загружает офферы мерчанта: сначала scoped endpoint, при его
// отказе - общий список с клиентской фильтрацией. Ошибка возвращается
// только когда оба пути не сработали.
func (c *Controller) LoadOffers(ctx context.Context) (OffersResult, error) {
	if c.Mode() != ModeAuthenticated {
		return OffersResult{}, ErrNotAuthenticated
	}

	offers, err := c.api.MerchantOffers(ctx, c.creds)
	if err == nil {
		return OffersResult{Offers: offers, Source: SourceScoped}, nil
	}
	if foodyapi.IsStatus(err, http.StatusNotFound) {
		c.logger.Debug("scoped offers endpoint absent in this deployment, falling back to global list")
	} else {
		c.logger.Debug("scoped offers endpoint failed, falling back to global list",
			slog.String("error", err.Error()),
		)
	}

	all, ferr := c.api.ListOffers(ctx)
	if ferr != nil {
		// Оба пути упали - наружу уходит ошибка scoped endpoint'а,
		// фоллбек упоминаем в логе
		c.logger.Warn("offer list fallback failed too", slog.String("error", ferr.Error()))
		return OffersResult{}, err
	}

	mine := make([]domain.Offer, 0, len(all))
	for _, o := range all {
		if o.RestaurantID == c.creds.RestaurantID {
			mine = append(mine, o)
		}
	}
	return OffersResult{Offers: mine, Source: SourceFallback}, nil
}

// Dashboard загружает офферы и считает агрегаты для главной панели.
func (c *Controller) Dashboard(ctx context.Context) (domain.DashboardStats, OffersResult, error) {
	res, err := c.LoadOffers(ctx)
	if err != nil {
		return domain.DashboardStats{}, OffersResult{}, err
	}
	return domain.ComputeStats(res.Offers), res, nil
}

// ============================================
// Offer Creation
// ============================================

// OfferForm - форма создания оффера, все поля как ввёл пользователь.
//
// Title и Price обязательны и блокируют отправку; остальные поля при
// невалидном вводе тихо приводятся к безопасному отсутствию.
type OfferForm struct {
	Title         string `validate:"required"`
	Price         string `validate:"required"`
	OriginalPrice string
	QtyTotal      string
	ExpiresAt     string // "2006-01-02 15:04" либо с "T", см. ParseLocalDateTime
	ImageURL      string
	Description   string
	Category      string
}

// BuildCreateRequest переводит форму в wire-payload:
// десятичные цены - в целые копейки с округлением, qty_left = qty_total,
// невалидная дата - отсутствующее поле.
func (c *Controller) BuildCreateRequest(form OfferForm) foodyapi.CreateOfferRequest {
	qty := coerceQty(form.QtyTotal)
	req := foodyapi.CreateOfferRequest{
		RestaurantID:       c.creds.RestaurantID,
		Title:              strings.TrimSpace(form.Title),
		PriceCents:         domain.CoerceCents(form.Price),
		OriginalPriceCents: domain.CoerceCents(form.OriginalPrice),
		QtyTotal:           qty,
		QtyLeft:            qty,
		ExpiresAt:          ParseLocalDateTime(form.ExpiresAt),
		ImageURL:           optional(form.ImageURL),
		Description:        optional(form.Description),
		Category:           optional(form.Category),
	}
	return req
}

// CreateOffer валидирует форму и создаёт оффер.
func (c *Controller) CreateOffer(ctx context.Context, form OfferForm) error {
	if c.Mode() != ModeAuthenticated {
		return ErrNotAuthenticated
	}
	if err := c.validateForm(form); err != nil {
		return err
	}
	return c.api.CreateOffer(ctx, c.creds, c.BuildCreateRequest(form))
}

// CreateOfferWithPhoto сначала загружает фото на /upload и подставляет
// полученный URL в image_url, затем создаёт оффер.
func (c *Controller) CreateOfferWithPhoto(ctx context.Context, form OfferForm, filename string, photo io.Reader) error {
	if c.Mode() != ModeAuthenticated {
		return ErrNotAuthenticated
	}
	if err := c.validateForm(form); err != nil {
		return err
	}

	url, err := c.api.Upload(ctx, filename, photo)
	if err != nil {
		return fmt.Errorf("photo upload: %w", err)
	}
	form.ImageURL = url
	return c.api.CreateOffer(ctx, c.creds, c.BuildCreateRequest(form))
}

// validateForm проверяет обязательные поля; их отсутствие блокирует
// отправку с понятным сообщением.
func (c *Controller) validateForm(form OfferForm) error {
	err := c.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return fmt.Errorf("required fields missing: %s", strings.Join(fields, ", "))
	}
	return err
}

// ============================================
// Export Pane
// ============================================

// ExportCSV скачивает CSV офферов мерчанта в w. Формат целиком на
// стороне бекенда, клиент ничего не генерирует.
func (c *Controller) ExportCSV(ctx context.Context, w io.Writer) error {
	if c.Mode() != ModeAuthenticated {
		return ErrNotAuthenticated
	}
	return c.api.ExportCSV(ctx, c.creds, w)
}

// DefaultCSVFilename - имя файла выгрузки, как в браузерной версии.
func (c *Controller) DefaultCSVFilename() string {
	return fmt.Sprintf("foody_offers_%s.csv", c.creds.RestaurantID)
}

// ============================================
// Helpers
// ============================================

// coerceQty повторяет браузерное Number(x)||1: нечисло и ноль дают 1.
func coerceQty(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v == 0 {
		return 1
	}
	return v
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
