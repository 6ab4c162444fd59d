package shoppinglist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/foodgram-api/internal/obs"
)

// LineSource returns every ingredient line of the recipes in a user's shopping cart.
// Lines must come back in a stable order; aggregation keeps first-seen order.
type LineSource interface {
	CartIngredientLines(ctx context.Context, userID int64) ([]IngredientLine, error)
}

// Service builds downloadable shopping lists.
type Service struct {
	Lines LineSource
	Setup PageSetup
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) setup() PageSetup {
	if s.Setup == (PageSetup{}) {
		return DefaultPageSetup()
	}
	return s.Setup
}

// Build aggregates the user's cart and renders it in the format named by token.
// Unknown tokens fail with ErrUnsupportedFormat before the cart is read.
func (s *Service) Build(ctx context.Context, userID int64, token string) (Document, error) {
	if s == nil || s.Lines == nil {
		return Document{}, errors.New("shopping list service not configured")
	}
	format, err := ParseFormat(token)
	if err != nil {
		observeBuild(token, "unsupported_format", 0, 0)
		return Document{}, err
	}
	start := s.now()

	lines, err := s.Lines.CartIngredientLines(ctx, userID)
	if err != nil {
		observeBuild(format.String(), "source_error", 0, 0)
		return Document{}, fmt.Errorf("load cart ingredients: %w", err)
	}
	result, err := Aggregate(lines)
	if err != nil {
		observeBuild(format.String(), "aggregate_error", 0, 0)
		return Document{}, err
	}
	doc, err := s.Render(result, format)
	if err != nil {
		observeBuild(format.String(), "render_error", 0, 0)
		return Document{}, err
	}
	observeBuild(format.String(), "ok", result.Len(), s.now().Sub(start))
	return doc, nil
}

// Render encodes an aggregated result and wraps it for delivery.
func (s *Service) Render(result Result, format Format) (Document, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case FormatText:
		body = RenderText(result)
	case FormatPaginated:
		body, err = RenderPaginated(result, s.setup())
		if err != nil {
			return Document{}, err
		}
	default:
		return Document{}, fmt.Errorf("%w: format %d", ErrUnsupportedFormat, int(format))
	}
	return Wrap(body, format)
}

func observeBuild(format, result string, entries int, elapsed time.Duration) {
	format = boundedLabel(format)
	if obs.ShoppingListRendersTotal != nil {
		obs.ShoppingListRendersTotal.WithLabelValues(format, result).Inc()
	}
	if result != "ok" {
		return
	}
	if obs.ShoppingListEntries != nil {
		obs.ShoppingListEntries.WithLabelValues(format).Observe(float64(entries))
	}
	if obs.ShoppingListRenderLatency != nil {
		obs.ShoppingListRenderLatency.WithLabelValues(format).Observe(obs.DurationMillis(elapsed))
	}
}

// boundedLabel keeps client supplied tokens out of metric label values.
func boundedLabel(format string) string {
	switch format {
	case TokenText, TokenPaginated:
		return format
	default:
		return "other"
	}
}
