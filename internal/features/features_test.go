package features

import (
	"math"
)

// scenarioPrices returns the 81 point price path used across the package tests.
func scenarioPrices() []float64 {
	prices := []float64{100, 101, 99, 105, 110, 108, 112, 115, 111, 120}
	for i := len(prices); i < 81; i++ {
		prices = append(prices, 120+4*math.Sin(float64(i)/2)+0.3*float64(i-10))
	}

	return prices
}

func risingPrices(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}

	return prices
}
