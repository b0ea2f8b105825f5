package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RevenuePlaces is the precision impression revenue is reported with.
const RevenuePlaces = 6

func ParseDecimal(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}

func RoundRevenue(d decimal.Decimal) decimal.Decimal {
	return d.Round(RevenuePlaces)
}
