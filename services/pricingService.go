package services

import (
	"math"
	"strings"

	"foodstop-server/models"
)

// CouponConfig is the single configured promo code and its percentage.
type CouponConfig struct {
	Code       string
	Percentage float64
}

type PricingResult struct {
	Total      float64
	Discount   float64
	Applied    bool
	Percentage float64
}

// ComputeTotal calculates the authoritative order total. The coupon discount
// applies only to the subtotal of items whose name contains "pizza"
// (case-insensitive); a valid code on a cart with no pizza items yields a
// zero discount and is reported as not applied.
//
// Currency values are rounded to 2 decimal places, half away from zero.
func ComputeTotal(items []models.OrderItem, couponCode string, coupon CouponConfig) PricingResult {
	base := 0.0
	pizzaSubtotal := 0.0
	for _, item := range items {
		lineTotal := item.Unit_price * float64(item.Quantity)
		base += lineTotal
		if strings.Contains(strings.ToLower(item.Name), "pizza") {
			pizzaSubtotal += lineTotal
		}
	}

	result := PricingResult{Total: round2(base)}
	if !CouponValid(couponCode, coupon) {
		return result
	}

	result.Percentage = coupon.Percentage
	result.Discount = round2(pizzaSubtotal * coupon.Percentage / 100)
	result.Applied = result.Discount > 0
	result.Total = round2(base - result.Discount)
	return result
}

// CouponValid reports whether the code matches the configured coupon.
func CouponValid(couponCode string, coupon CouponConfig) bool {
	return couponCode != "" && coupon.Code != "" &&
		strings.EqualFold(couponCode, coupon.Code) && coupon.Percentage > 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
