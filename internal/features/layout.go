package features

import (
	"fmt"

	"github.com/rxtech-lab/argo-features/internal/types"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Scale is the fixed rescaling applied to a column when it is assembled.
// It is unrelated to the z-score normalization of a fitted Profile.
type Scale int

const (
	// ScaleNone keeps the indicator output as is.
	ScaleNone Scale = iota
	// ScalePercent divides by 100 (RSI to 0-1).
	ScalePercent
	// ScalePrice divides elementwise by the close price.
	ScalePrice
)

// Column describes one feature column: which indicator produces it, with which
// parameters, and how the output is rescaled.
type Column struct {
	Name      string
	Indicator types.IndicatorType
	Params    []any
	Scale     Scale
}

// LayoutOptions tunes the configurable windows of a layout. Zero values fall
// back to the defaults.
type LayoutOptions struct {
	RSIPeriod       int
	BollingerWindow int
	BollingerNumStd float64
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.RSIPeriod <= 0 {
		o.RSIPeriod = 14
	}

	if o.BollingerWindow <= 0 {
		o.BollingerWindow = 20
	}

	if o.BollingerNumStd <= 0 {
		o.BollingerNumStd = 2
	}

	return o
}

// Layout returns the default column layout of a variant.
func Layout(variant types.FeatureVariant) ([]Column, error) {
	return NewLayout(variant, LayoutOptions{})
}

// NewLayout returns the ordered columns of a variant.
//
//	minimal:  r5, r15, r30, vol30, rsi14, macd
//	enhanced: r5, r15, r30, r60, vol30, vol60, rsi14, macd, bb_position, price_momentum, volume_trend
func NewLayout(variant types.FeatureVariant, opts LayoutOptions) ([]Column, error) {
	opts = opts.withDefaults()
	rsiName := fmt.Sprintf("rsi%d", opts.RSIPeriod)

	switch variant {
	case types.FeatureVariantMinimal:
		return []Column{
			returnsColumn("r5", 5),
			returnsColumn("r15", 15),
			returnsColumn("r30", 30),
			volatilityColumn("vol30", 30),
			{Name: rsiName, Indicator: types.IndicatorTypeRSI, Params: []any{opts.RSIPeriod}, Scale: ScaleNone},
			{Name: "macd", Indicator: types.IndicatorTypeMACD, Scale: ScaleNone},
		}, nil
	case types.FeatureVariantEnhanced:
		return []Column{
			returnsColumn("r5", 5),
			returnsColumn("r15", 15),
			returnsColumn("r30", 30),
			returnsColumn("r60", 60),
			volatilityColumn("vol30", 30),
			volatilityColumn("vol60", 60),
			{Name: rsiName, Indicator: types.IndicatorTypeRSI, Params: []any{opts.RSIPeriod}, Scale: ScalePercent},
			{Name: "macd", Indicator: types.IndicatorTypeMACD, Scale: ScalePrice},
			{
				Name:      "bb_position",
				Indicator: types.IndicatorTypeBollingerPosition,
				Params:    []any{opts.BollingerWindow, opts.BollingerNumStd},
				Scale:     ScaleNone,
			},
			returnsColumn("price_momentum", 10),
			{Name: "volume_trend", Indicator: types.IndicatorTypeVolumeTrend, Params: []any{20}, Scale: ScaleNone},
		}, nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnknownVariant, "unknown feature variant %q", variant)
	}
}

// ColumnNames returns the names of the columns in order.
func ColumnNames(columns []Column) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}

	return names
}

func returnsColumn(name string, window int) Column {
	return Column{Name: name, Indicator: types.IndicatorTypeReturns, Params: []any{window}}
}

func volatilityColumn(name string, window int) Column {
	return Column{Name: name, Indicator: types.IndicatorTypeVolatility, Params: []any{window}}
}
