package marketdata

import (
	"context"
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/suite"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

type fakeFetcher struct {
	klines    []*binance.Kline
	err       error
	lastStart int64
	lastLimit int
}

func (f *fakeFetcher) Fetch(_ context.Context, _, _ string, startTime int64, limit int) ([]*binance.Kline, error) {
	f.lastStart = startTime
	f.lastLimit = limit

	return f.klines, f.err
}

func kline(openTime time.Time, closeTime time.Time, close string) *binance.Kline {
	return &binance.Kline{
		OpenTime:  openTime.UnixMilli(),
		CloseTime: closeTime.UnixMilli(),
		Open:      close,
		High:      close,
		Low:       close,
		Close:     close,
		Volume:    "10.5",
	}
}

type BinanceProviderTestSuite struct {
	suite.Suite

	fetcher  *fakeFetcher
	provider *BinanceProvider
	now      time.Time
}

func TestBinanceProviderSuite(t *testing.T) {
	suite.Run(t, new(BinanceProviderTestSuite))
}

func (suite *BinanceProviderTestSuite) SetupTest() {
	suite.fetcher = &fakeFetcher{}
	suite.now = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	suite.provider = &BinanceProvider{
		fetcher: suite.fetcher,
		now:     func() time.Time { return suite.now },
	}
}

func (suite *BinanceProviderTestSuite) TestDropsStillFormingCandle() {
	closed := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	forming := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	suite.fetcher.klines = []*binance.Kline{
		kline(closed, closed.Add(time.Hour-time.Millisecond), "100.5"),
		kline(forming, forming.Add(time.Hour-time.Millisecond), "101.5"),
	}

	bars, err := suite.provider.Bars(context.Background(), "BTCUSDT", "1h", time.Time{}, 500)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)

	suite.Equal(closed, bars[0].Time)
	suite.Equal("BTCUSDT", bars[0].Symbol)
	suite.Equal(100.5, bars[0].Close)
	suite.Equal(10.5, bars[0].Volume)
}

func (suite *BinanceProviderTestSuite) TestStartsAfterLastKnownBar() {
	last := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := suite.provider.Bars(context.Background(), "BTCUSDT", "1h", last, 500)
	suite.Require().NoError(err)

	suite.Equal(last.UnixMilli()+1, suite.fetcher.lastStart)
	suite.Equal(500, suite.fetcher.lastLimit)
}

func (suite *BinanceProviderTestSuite) TestZeroTimeRequestsFromHistory() {
	_, err := suite.provider.Bars(context.Background(), "BTCUSDT", "1h", time.Time{}, 500)
	suite.Require().NoError(err)
	suite.Equal(int64(0), suite.fetcher.lastStart)
}

func (suite *BinanceProviderTestSuite) TestFetchErrorWrapped() {
	suite.fetcher.err = errors.New(errors.ErrCodeMarketDataFetchFailed, "rate limited")

	_, err := suite.provider.Bars(context.Background(), "BTCUSDT", "1h", time.Time{}, 500)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
}

func (suite *BinanceProviderTestSuite) TestBadPriceStringRejected() {
	t := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	suite.fetcher.klines = []*binance.Kline{kline(t, t.Add(time.Hour), "not-a-number")}

	_, err := suite.provider.Bars(context.Background(), "BTCUSDT", "1h", time.Time{}, 500)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

// scriptedProvider serves a fixed bar schedule per timeframe and honors the
// after filter like the real provider does.
type scriptedProvider struct {
	bars  map[string][]types.Bar
	fails map[string]error
	calls int
}

func (p *scriptedProvider) Bars(_ context.Context, _, interval string, after time.Time, _ int) ([]types.Bar, error) {
	p.calls++

	if err := p.fails[interval]; err != nil {
		return nil, err
	}

	var out []types.Bar

	for _, b := range p.bars[interval] {
		if b.Time.After(after) {
			out = append(out, b)
		}
	}

	return out, nil
}

type MonitorTestSuite struct {
	suite.Suite
}

func TestMonitorSuite(t *testing.T) {
	suite.Run(t, new(MonitorTestSuite))
}

func (suite *MonitorTestSuite) bar(hour int) types.Bar {
	return types.Bar{
		Time:   time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC),
		Symbol: "BTCUSDT",
		Close:  100 + float64(hour),
	}
}

func (suite *MonitorTestSuite) TestPollFeedsNewBarsOnce() {
	provider := &scriptedProvider{bars: map[string][]types.Bar{
		"1h": {suite.bar(9), suite.bar(10)},
	}}

	var received []types.Bar
	handler := func(_ context.Context, timeframe string, bar types.Bar) error {
		suite.Equal("1h", timeframe)
		received = append(received, bar)

		return nil
	}

	monitor := NewMonitor(provider, "BTCUSDT", []string{"1h"}, time.Minute, handler, nil)

	ctx := context.Background()
	monitor.poll1(ctx)
	suite.Len(received, 2)

	// Same schedule again: everything is already consumed.
	monitor.poll1(ctx)
	suite.Len(received, 2)

	// A new bar appears and only it is delivered.
	provider.bars["1h"] = append(provider.bars["1h"], suite.bar(11))
	monitor.poll1(ctx)
	suite.Require().Len(received, 3)
	suite.Equal(suite.bar(11).Time, received[2].Time)
}

func (suite *MonitorTestSuite) TestFailingTimeframeDoesNotBlockOthers() {
	provider := &scriptedProvider{
		bars: map[string][]types.Bar{
			"1d": {suite.bar(0)},
		},
		fails: map[string]error{
			"1h": errors.New(errors.ErrCodeMarketDataFetchFailed, "timeout"),
		},
	}

	var received int
	handler := func(_ context.Context, _ string, _ types.Bar) error {
		received++

		return nil
	}

	monitor := NewMonitor(provider, "BTCUSDT", []string{"1h", "1d"}, time.Minute, handler, nil)
	monitor.poll1(context.Background())

	suite.Equal(1, received)
}

func (suite *MonitorTestSuite) TestHandlerErrorStopsPassNotMonitor() {
	provider := &scriptedProvider{bars: map[string][]types.Bar{
		"1h": {suite.bar(9), suite.bar(10)},
	}}

	failOnce := true
	var received []types.Bar
	handler := func(_ context.Context, _ string, bar types.Bar) error {
		if failOnce {
			failOnce = false

			return errors.New(errors.ErrCodeEngineNotReady, "not ready")
		}

		received = append(received, bar)

		return nil
	}

	monitor := NewMonitor(provider, "BTCUSDT", []string{"1h"}, time.Minute, handler, nil)

	ctx := context.Background()
	monitor.poll1(ctx)
	suite.Empty(received)

	// The failed bar was not marked consumed, so the next pass retries it.
	monitor.poll1(ctx)
	suite.Len(received, 2)
}

func (suite *MonitorTestSuite) TestRunStopsOnContextCancel() {
	provider := &scriptedProvider{}
	monitor := NewMonitor(provider, "BTCUSDT", []string{"1h"}, 10*time.Millisecond, func(_ context.Context, _ string, _ types.Bar) error {
		return nil
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := monitor.Run(ctx)
	suite.ErrorIs(err, context.DeadlineExceeded)
	suite.GreaterOrEqual(provider.calls, 1)
}
