package collector

import (
	"context"

	"TrendLens/internal/model"
)

// Source defines the interface for loading market data.
type Source interface {
	// FetchBars returns up to limit of the most recent bars. Order is not guaranteed.
	FetchBars(ctx context.Context, symbol string, limit int) ([]model.RawBar, error)
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)
	Name() string
}
