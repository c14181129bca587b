package indicator

import (
	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
// Compute yields the histogram (MACD line minus signal line).
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12, // Default fast period
		slowPeriod:   26, // Default slow period
		signalPeriod: 9,  // Default signal period
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := positiveInt(params[0], "fastPeriod")
	if err != nil {
		return err
	}

	slowPeriod, err := positiveInt(params[1], "slowPeriod")
	if err != nil {
		return err
	}

	signalPeriod, err := positiveInt(params[2], "signalPeriod")
	if err != nil {
		return err
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

// Compute implements Indicator.
func (m *MACD) Compute(input Input) ([]float64, error) {
	return calculateMACDHistogram(input.Closes, m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

// CalculateMACDLine returns EMA(fast) - EMA(slow).
func CalculateMACDLine(prices []float64, fastPeriod, slowPeriod int) ([]float64, error) {
	fast, err := CalculateEMA(prices, fastPeriod)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate fast EMA", err)
	}

	slow, err := CalculateEMA(prices, slowPeriod)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate slow EMA", err)
	}

	line := make([]float64, len(prices))
	for i := range line {
		line[i] = fast[i] - slow[i]
	}

	return line, nil
}

// CalculateMACD returns the 12/26/9 MACD histogram. Callers that need the raw
// line should use CalculateMACDLine.
func CalculateMACD(prices []float64) ([]float64, error) {
	return calculateMACDHistogram(prices, 12, 26, 9)
}

func calculateMACDHistogram(prices []float64, fastPeriod, slowPeriod, signalPeriod int) ([]float64, error) {
	line, err := CalculateMACDLine(prices, fastPeriod, slowPeriod)
	if err != nil {
		return nil, err
	}

	signal, err := CalculateEMA(line, signalPeriod)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate signal line", err)
	}

	histogram := make([]float64, len(line))
	for i := range histogram {
		histogram[i] = line[i] - signal[i]
	}

	return histogram, nil
}
