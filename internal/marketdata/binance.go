package marketdata

import (
	"context"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// klineFetcher is the slice of the binance client the provider uses; tests
// substitute it.
type klineFetcher interface {
	Fetch(ctx context.Context, symbol, interval string, startTime int64, limit int) ([]*binance.Kline, error)
}

type binanceFetcher struct {
	client *binance.Client
}

func (f *binanceFetcher) Fetch(ctx context.Context, symbol, interval string, startTime int64, limit int) ([]*binance.Kline, error) {
	svc := f.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit)

	if startTime > 0 {
		svc = svc.StartTime(startTime)
	}

	return svc.Do(ctx)
}

// BinanceProvider serves closed klines from the Binance spot API. Market
// data endpoints need no credentials.
type BinanceProvider struct {
	fetcher klineFetcher
	now     func() time.Time
}

var _ Provider = (*BinanceProvider)(nil)

func NewBinanceProvider() *BinanceProvider {
	return &BinanceProvider{
		fetcher: &binanceFetcher{client: binance.NewClient("", "")},
		now:     time.Now,
	}
}

// Bars fetches klines after the given time and drops the still-forming
// candle so downstream consumers only ever see closed bars.
func (p *BinanceProvider) Bars(ctx context.Context, symbol, interval string, after time.Time, limit int) ([]types.Bar, error) {
	var startTime int64
	if !after.IsZero() {
		// Klines are keyed by open time; ask from 1ms past the last
		// known bar to avoid refetching it.
		startTime = after.UnixMilli() + 1
	}

	klines, err := p.fetcher.Fetch(ctx, symbol, interval, startTime, limit)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "fetch %s %s klines", symbol, interval)
	}

	nowMillis := p.now().UnixMilli()
	bars := make([]types.Bar, 0, len(klines))

	for _, k := range klines {
		if k.CloseTime >= nowMillis {
			continue
		}

		bar, err := klineToBar(symbol, k)
		if err != nil {
			return nil, err
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

// klineToBar converts one kline. Binance serves prices as strings; they go
// through decimal so "4.30000000" style values parse exactly.
func klineToBar(symbol string, k *binance.Kline) (types.Bar, error) {
	fields := [5]string{k.Open, k.High, k.Low, k.Close, k.Volume}

	var values [5]float64

	for i, s := range fields {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return types.Bar{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "parse kline field %q", s)
		}

		values[i] = d.InexactFloat64()
	}

	return types.Bar{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Symbol: symbol,
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}
