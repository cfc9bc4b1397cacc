package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/joseporiolcarne/backtraderalerts/internal/config"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

type SetupTestSuite struct {
	suite.Suite
}

func TestSetupSuite(t *testing.T) {
	suite.Run(t, new(SetupTestSuite))
}

func (suite *SetupTestSuite) TestFromConfigBuildsWorkingEngine() {
	cfg, err := config.Parse([]byte(`
symbol: BTCUSDT
strategy: breakout
timeframes:
  - name: 1h
    indicators:
      - name: sma
        type: sma
        params:
          period: 2
condition_groups:
  - name: entry
    action: BUY
    conditions:
      - timeframe: 1h
        kind: crossover
        operator: crosses_above
        left: price
        right: sma
`))
	suite.Require().NoError(err)

	dispatcher := &recordingDispatcher{}
	eng, err := FromConfig(cfg, dispatcher, nil)
	suite.Require().NoError(err)

	suite.Equal([]string{"1h"}, eng.Bindings().Names())
	suite.Equal(types.PositionFlat, eng.Position())

	// Price 10, 10, then 16: sma lags and price crosses above it.
	ctx := context.Background()
	for i, c := range []float64{10, 10, 16} {
		bar := types.Bar{
			Time:  time.Date(2024, 3, 1, i, 0, 0, 0, time.UTC),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
		suite.Require().NoError(eng.OnBar(ctx, "1h", bar))
	}

	suite.Require().Len(dispatcher.events, 1)
	suite.Equal("entry", dispatcher.events[0].Group)
	suite.Equal(types.PositionInPosition, eng.Position())
}
