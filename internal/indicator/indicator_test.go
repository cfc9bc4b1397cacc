package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/joseporiolcarne/backtraderalerts/internal/series"
	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

// historyFromCloses builds a bar history where only closes matter.
func historyFromCloses(closes ...float64) *series.BarHistory {
	h := series.NewBarHistory(series.DefaultWindowSize)
	for i, c := range closes {
		h.Push(types.Bar{
			Time:  time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		})
	}

	return h
}

// feed replays the history bar by bar through the indicator, mimicking the
// engine's advance loop, and returns the primary line.
func feed(ind Indicator, closes ...float64) series.Series {
	h := series.NewBarHistory(series.DefaultWindowSize)
	for i, c := range closes {
		h.Push(types.Bar{
			Time:  time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		})

		_ = ind.Update(h)
	}

	return ind.Primary()
}

type SMATestSuite struct {
	suite.Suite
}

func TestSMASuite(t *testing.T) {
	suite.Run(t, new(SMATestSuite))
}

func (suite *SMATestSuite) TestDefaults() {
	ind, err := NewSMA(Params{})
	suite.NoError(err)
	suite.Equal(types.IndicatorTypeSMA, ind.Type())
	suite.Equal([]string{"sma"}, ind.LineNames())
}

func (suite *SMATestSuite) TestInvalidPeriod() {
	_, err := NewSMA(Params{"period": -1})
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidPeriod, errors.GetCode(err))
}

func (suite *SMATestSuite) TestUnknownParameterRejected() {
	_, err := NewSMA(Params{"perod": 10})
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidParameter, errors.GetCode(err))
}

func (suite *SMATestSuite) TestValues() {
	ind, err := NewSMA(Params{"period": 3})
	suite.NoError(err)

	line := feed(ind, 1, 2, 3, 4)

	// Warmup bars are NaN.
	v, err := line.Value(-3)
	suite.NoError(err)
	suite.True(math.IsNaN(v))

	v, err = line.Value(-1)
	suite.NoError(err)
	suite.InDelta(2.0, v, 1e-9)

	v, err = line.Value(0)
	suite.NoError(err)
	suite.InDelta(3.0, v, 1e-9)
}

func (suite *SMATestSuite) TestOneValuePerBar() {
	ind, err := NewSMA(Params{"period": 3})
	suite.NoError(err)

	line := feed(ind, 1, 2, 3, 4, 5)
	suite.Equal(5, line.Len())
}

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestSeededWithSMA() {
	ind, err := NewEMA(Params{"period": 3})
	suite.NoError(err)

	line := feed(ind, 1, 2, 3)

	v, err := line.Value(0)
	suite.NoError(err)
	suite.InDelta(2.0, v, 1e-9)
}

func (suite *EMATestSuite) TestSmoothing() {
	ind, err := NewEMA(Params{"period": 3})
	suite.NoError(err)

	// alpha = 2/(3+1) = 0.5; seed = 2; then 4*0.5 + 2*0.5 = 3.
	line := feed(ind, 1, 2, 3, 4)

	v, err := line.Value(0)
	suite.NoError(err)
	suite.InDelta(3.0, v, 1e-9)
}

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestWarmup() {
	ind, err := NewRSI(Params{"period": 3})
	suite.NoError(err)

	line := feed(ind, 1, 2, 3)

	v, err := line.Value(0)
	suite.NoError(err)
	suite.True(math.IsNaN(v))
}

func (suite *RSITestSuite) TestKnownValue() {
	ind, err := NewRSI(Params{"period": 3})
	suite.NoError(err)

	// gains [1,1,0], losses [0,0,1] -> rs = 2 -> rsi = 66.67.
	line := feed(ind, 1, 2, 3, 2)

	v, err := line.Value(0)
	suite.NoError(err)
	suite.InDelta(66.6667, v, 1e-3)
}

func (suite *RSITestSuite) TestPerfectUptrend() {
	ind, err := NewRSI(Params{"period": 3})
	suite.NoError(err)

	line := feed(ind, 1, 2, 3, 4)

	v, err := line.Value(0)
	suite.NoError(err)
	suite.InDelta(100.0, v, 1e-9)
}

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestLines() {
	ind, err := NewBollingerBands(Params{"period": 3, "std_dev": 2.0})
	suite.NoError(err)
	suite.Equal([]string{"mid", "upper", "lower"}, ind.LineNames())
}

func (suite *BollingerBandsTestSuite) TestValues() {
	ind, err := NewBollingerBands(Params{"period": 3, "std_dev": 2.0})
	suite.NoError(err)

	h := historyFromCloses(1, 2, 3)
	suite.NoError(ind.Update(h))

	std := math.Sqrt(2.0 / 3.0)

	mid, err := ind.Line("mid")
	suite.NoError(err)
	v, err := mid.Value(0)
	suite.NoError(err)
	suite.InDelta(2.0, v, 1e-9)

	upper, err := ind.Line("upper")
	suite.NoError(err)
	v, err = upper.Value(0)
	suite.NoError(err)
	suite.InDelta(2.0+2.0*std, v, 1e-9)

	lower, err := ind.Line("lower")
	suite.NoError(err)
	v, err = lower.Value(0)
	suite.NoError(err)
	suite.InDelta(2.0-2.0*std, v, 1e-9)
}

func (suite *BollingerBandsTestSuite) TestEmptyLineNameResolvesPrimary() {
	ind, err := NewBollingerBands(Params{})
	suite.NoError(err)

	line, err := ind.Line("")
	suite.NoError(err)
	suite.Equal(ind.Primary(), line)
}

func (suite *BollingerBandsTestSuite) TestUnknownLine() {
	ind, err := NewBollingerBands(Params{})
	suite.NoError(err)

	_, err = ind.Line("middle")
	suite.Error(err)
	suite.Equal(errors.ErrCodeLineNotFound, errors.GetCode(err))
}

type ATRTestSuite struct {
	suite.Suite
}

func TestATRSuite(t *testing.T) {
	suite.Run(t, new(ATRTestSuite))
}

func (suite *ATRTestSuite) bar(high, low, close float64) types.Bar {
	return types.Bar{High: high, Low: low, Close: close}
}

func (suite *ATRTestSuite) TestValues() {
	ind, err := NewATR(Params{"period": 2})
	suite.NoError(err)

	h := series.NewBarHistory(series.DefaultWindowSize)
	h.Push(suite.bar(10, 8, 9))
	suite.NoError(ind.Update(h))

	h.Push(suite.bar(11, 9, 10))
	suite.NoError(ind.Update(h))

	h.Push(suite.bar(12, 10, 11))
	suite.NoError(ind.Update(h))

	v, err := ind.Primary().Value(0)
	suite.NoError(err)
	suite.InDelta(2.0, v, 1e-9)

	// Wilder smoothing: (2*1 + 4) / 2 = 3.
	h.Push(suite.bar(15, 11, 14))
	suite.NoError(ind.Update(h))

	v, err = ind.Primary().Value(0)
	suite.NoError(err)
	suite.InDelta(3.0, v, 1e-9)
}

type MACDTestSuite struct {
	suite.Suite
}

func TestMACDSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func (suite *MACDTestSuite) TestFastMustBeSmallerThanSlow() {
	_, err := NewMACD(Params{"fast_period": 26, "slow_period": 12})
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidPeriod, errors.GetCode(err))
}

func (suite *MACDTestSuite) TestLines() {
	ind, err := NewMACD(Params{})
	suite.NoError(err)
	suite.Equal([]string{"macd", "signal", "histogram"}, ind.LineNames())
}

func (suite *MACDTestSuite) TestMACDLine() {
	ind, err := NewMACD(Params{"fast_period": 1, "slow_period": 2, "signal_period": 2})
	suite.NoError(err)

	// fast EMA with period 1 equals the last close; slow EMA period 2:
	// seed (1+2)/2 = 1.5, then 3*(2/3) + 1.5*(1/3) = 2.5.
	line := feed(ind, 1, 2, 3)

	v, err := line.Value(0)
	suite.NoError(err)
	suite.InDelta(3.0-2.5, v, 1e-9)
}

func (suite *MACDTestSuite) TestHistogramIsMacdMinusSignal() {
	ind, err := NewMACD(Params{"fast_period": 1, "slow_period": 2, "signal_period": 2})
	suite.NoError(err)

	feed(ind, 1, 2, 3, 4, 5)

	macd, _ := ind.Line("macd")
	signal, _ := ind.Line("signal")
	histogram, _ := ind.Line("histogram")

	m, err := macd.Value(0)
	suite.NoError(err)
	s, err := signal.Value(0)
	suite.NoError(err)
	hv, err := histogram.Value(0)
	suite.NoError(err)
	suite.InDelta(m-s, hv, 1e-9)
}

type FactoryTestSuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}

func (suite *FactoryTestSuite) TestNewKnownTypes() {
	for _, indicatorType := range SupportedTypes() {
		ind, err := New(indicatorType, Params{})
		suite.NoError(err, "constructing %s", indicatorType)
		suite.Equal(indicatorType, ind.Type())
	}
}

func (suite *FactoryTestSuite) TestUnknownTypeFailsFast() {
	_, err := New(types.IndicatorType("supertrend"), Params{})
	suite.Error(err)
	suite.Equal(errors.ErrCodeUnknownIndicatorType, errors.GetCode(err))
}

func (suite *FactoryTestSuite) TestInvalidParamsSurfaceAtConstruction() {
	_, err := New(types.IndicatorTypeRSI, Params{"period": "fourteen"})
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidType, errors.GetCode(err))
}

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestBindAndGet() {
	r := NewRegistry()

	rsi, err := New(types.IndicatorTypeRSI, Params{"period": 14})
	suite.NoError(err)
	suite.NoError(r.Bind("rsi", rsi))

	got, err := r.Get("rsi")
	suite.NoError(err)
	suite.Equal(rsi, got)
}

func (suite *RegistryTestSuite) TestDuplicateBind() {
	r := NewRegistry()

	rsi, err := New(types.IndicatorTypeRSI, Params{})
	suite.NoError(err)
	suite.NoError(r.Bind("rsi", rsi))

	err = r.Bind("rsi", rsi)
	suite.Error(err)
	suite.Equal(errors.ErrCodeIndicatorAlreadyExists, errors.GetCode(err))
}

func (suite *RegistryTestSuite) TestGetMissing() {
	r := NewRegistry()

	_, err := r.Get("macd")
	suite.Error(err)
	suite.Equal(errors.ErrCodeIndicatorNotFound, errors.GetCode(err))
}

func (suite *RegistryTestSuite) TestListPreservesBindOrder() {
	r := NewRegistry()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		ind, err := New(types.IndicatorTypeSMA, Params{})
		suite.NoError(err)
		suite.NoError(r.Bind(name, ind))
	}

	suite.Equal([]string{"zeta", "alpha", "mid"}, r.List())
}

func (suite *RegistryTestSuite) TestUpdateAll() {
	r := NewRegistry()

	sma, err := New(types.IndicatorTypeSMA, Params{"period": 2})
	suite.NoError(err)
	suite.NoError(r.Bind("sma", sma))

	h := historyFromCloses(1, 2)
	suite.NoError(r.UpdateAll(h))

	v, err := sma.Primary().Value(0)
	suite.NoError(err)
	suite.InDelta(1.5, v, 1e-9)
}
