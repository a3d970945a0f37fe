// Package buyer implements the storefront client state: a list of offers,
// a search query, and a reservation action.
//
// The controller is deliberately single-threaded, mirroring the browser
// main thread it replaces: callers drive it from one goroutine and every
// re-render is total (Visible recomputes the full filtered list, no
// incremental diffing).
package buyer

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Haleralex/foodyhub/internal/domain"
	"github.com/Haleralex/foodyhub/internal/foodyapi"
)

// placeholder replaces absent values in the detail view.
const placeholder = "—"

// reserveName is the fixed requester name sent with reservations; the
// storefront has no account of its own.
const reserveName = "TG"

// API is the slice of the backend client the buyer needs.
type API interface {
	ListOffers(ctx context.Context) ([]domain.Offer, error)
	Reserve(ctx context.Context, req foodyapi.ReserveRequest) error
}

// LoadResult tells the caller which path a load took. A backend failure is
// not fatal for the storefront: the list is treated as empty and Degraded
// is set, so the view shows "no offers" instead of an error.
type LoadResult struct {
	Offers   []domain.Offer
	Degraded bool
	Err      error // причина деградации, для лога; пользователю не показывается
}

// Controller holds the buyer view state.
type Controller struct {
	api    API
	logger *slog.Logger

	offers []domain.Offer
	query  string
}

// NewController создаёт buyer-контроллер.
func NewController(api API, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{api: api, logger: logger}
}

// Load fetches all offers, fully replacing the in-memory list.
func (c *Controller) Load(ctx context.Context) LoadResult {
	offers, err := c.api.ListOffers(ctx)
	if err != nil {
		c.logger.Warn("offer load failed, showing empty list", slog.String("error", err.Error()))
		c.offers = nil
		return LoadResult{Degraded: true, Err: err}
	}
	c.offers = offers
	return LoadResult{Offers: offers}
}

// SetQuery updates the search string.
func (c *Controller) SetQuery(q string) {
	c.query = q
}

// Query returns the current search string.
func (c *Controller) Query() string {
	return c.query
}

// Visible returns the offers matching the current query: case-insensitive
// substring match against the title only, empty query matches all.
func (c *Controller) Visible() []domain.Offer {
	if c.query == "" {
		return append([]domain.Offer(nil), c.offers...)
	}
	q := strings.ToLower(c.query)
	var out []domain.Offer
	for _, o := range c.offers {
		if strings.Contains(strings.ToLower(o.Title), q) {
			out = append(out, o)
		}
	}
	return out
}

// DetailView is the formatted detail panel for one offer.
type DetailView struct {
	Title         string
	Price         string // integer currency units, no decimals
	OriginalPrice string // placeholder when absent
	Discount      string // "-25%", empty when no discount
	Quantity      string // "left / total"
	Expires       string // localized timestamp or placeholder
	Description   string
	ImageURL      string
}

// Detail formats an offer for the detail panel.
func Detail(o domain.Offer) DetailView {
	v := DetailView{
		Title:       o.Title,
		Price:       domain.FormatPrice(o.PriceCents),
		Quantity:    formatQty(o.QtyLeft, o.QtyTotal),
		Description: o.Description,
		ImageURL:    o.ImageURL,
	}
	if v.Title == "" {
		v.Title = placeholder
	}

	if o.OriginalPriceCents > 0 {
		v.OriginalPrice = domain.FormatPrice(o.OriginalPriceCents)
	} else {
		v.OriginalPrice = placeholder
	}
	if o.HasDiscount() {
		v.Discount = formatDiscount(o.DiscountPercent())
	}

	if o.ExpiresAt != nil {
		v.Expires = o.ExpiresAt.Local().Format("02.01.2006 15:04")
	} else {
		v.Expires = placeholder
	}
	return v
}

// Reserve submits a reservation for the offer. The offer list is not
// refreshed and no quantity is decremented optimistically; success or
// failure is for the caller to surface as a transient notification.
func (c *Controller) Reserve(ctx context.Context, offerID domain.ID) error {
	return c.api.Reserve(ctx, foodyapi.ReserveRequest{
		OfferID: offerID,
		Name:    reserveName,
		Phone:   "",
	})
}

func formatQty(left, total int) string {
	return strconv.Itoa(left) + " / " + strconv.Itoa(total)
}

func formatDiscount(pct int) string {
	return "-" + strconv.Itoa(pct) + "%"
}
