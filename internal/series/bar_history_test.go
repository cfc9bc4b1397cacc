package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

type BarHistoryTestSuite struct {
	suite.Suite
}

func TestBarHistorySuite(t *testing.T) {
	suite.Run(t, new(BarHistoryTestSuite))
}

func (suite *BarHistoryTestSuite) bar(close float64) types.Bar {
	return types.Bar{
		Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Symbol: "BTCUSDT",
		Open:   close - 1,
		High:   close + 1,
		Low:    close - 2,
		Close:  close,
		Volume: 100,
	}
}

func (suite *BarHistoryTestSuite) TestPushAndBar() {
	h := NewBarHistory(10)
	h.Push(suite.bar(10))
	h.Push(suite.bar(11))

	bar, err := h.Bar(0)
	suite.NoError(err)
	suite.Equal(11.0, bar.Close)

	bar, err = h.Bar(-1)
	suite.NoError(err)
	suite.Equal(10.0, bar.Close)
}

func (suite *BarHistoryTestSuite) TestBarBeyondHistory() {
	h := NewBarHistory(10)
	h.Push(suite.bar(10))

	_, err := h.Bar(-1)
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))

	_, err = h.Bar(1)
	suite.Error(err)
	suite.Equal(errors.ErrCodeOffsetOutOfRange, errors.GetCode(err))
}

func (suite *BarHistoryTestSuite) TestEviction() {
	h := NewBarHistory(2)
	h.Push(suite.bar(1))
	h.Push(suite.bar(2))
	h.Push(suite.bar(3))

	suite.Equal(2, h.Len())

	bar, err := h.Bar(-1)
	suite.NoError(err)
	suite.Equal(2.0, bar.Close)
}

func (suite *BarHistoryTestSuite) TestFieldSeries() {
	h := NewBarHistory(10)
	closes := h.Field(types.PriceFieldClose)
	highs := h.Field(types.PriceFieldHigh)

	// Views reflect bars pushed after creation.
	h.Push(suite.bar(10))
	h.Push(suite.bar(12))

	v, err := closes.Value(0)
	suite.NoError(err)
	suite.Equal(12.0, v)

	v, err = closes.Value(-1)
	suite.NoError(err)
	suite.Equal(10.0, v)

	v, err = highs.Value(0)
	suite.NoError(err)
	suite.Equal(13.0, v)

	suite.Equal(2, closes.Len())
}

func (suite *BarHistoryTestSuite) TestLast() {
	h := NewBarHistory(10)
	h.Push(suite.bar(1))
	h.Push(suite.bar(2))
	h.Push(suite.bar(3))

	last := h.Last(2)
	suite.Len(last, 2)
	suite.Equal(2.0, last[0].Close)
	suite.Equal(3.0, last[1].Close)

	suite.Len(h.Last(10), 3)
}
