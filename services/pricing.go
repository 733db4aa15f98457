package services

import (
	"math"
	"time"
)

const (
	baseDiscountPercent = 2
	weeklyDiscountStep  = 3
	maxDiscountPercent  = 50
	maxSuggestions      = 3
)

// SuggestOffers proposes up to three distinct discounted price points for a
// buyer opening an offer on a product. The starting discount grows with the
// listing's age (2% plus 3% per elapsed whole week) and each further
// suggestion adds one percent, capped at 50%. Prices are rounded
// half-away-from-zero (math.Round); when rounding collapses two candidates
// into the same price the discount keeps stepping until three unique prices
// are found or the cap is reached.
func SuggestOffers(basePrice float64, createdAt, now time.Time) []float64 {
	weeks := elapsedWeeks(createdAt, now)
	discount := baseDiscountPercent + weeklyDiscountStep*weeks
	if discount > maxDiscountPercent {
		discount = maxDiscountPercent
	}

	suggestions := make([]float64, 0, maxSuggestions)
	for d := discount; d <= maxDiscountPercent && len(suggestions) < maxSuggestions; d++ {
		price := math.Round(basePrice * (1 - float64(d)/100))
		if containsPrice(suggestions, price) {
			continue
		}
		suggestions = append(suggestions, price)
	}
	return suggestions
}

// elapsedWeeks returns the whole weeks between createdAt and now, treating
// clock skew (now before createdAt) as zero.
func elapsedWeeks(createdAt, now time.Time) int {
	if now.Before(createdAt) {
		return 0
	}
	return int(now.Sub(createdAt).Hours() / (24 * 7))
}

func containsPrice(prices []float64, price float64) bool {
	for _, p := range prices {
		if p == price {
			return true
		}
	}
	return false
}
