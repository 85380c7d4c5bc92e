package billing

import "math"

const (
	// VATRate is the Korean value-added tax applied on top of supply amounts.
	VATRate = 0.10
	// PointsPerKRW: 100 KRW of the paid amount yields 1 base point.
	PointsPerKRW = 100
	// BonusRate is the promotional bonus granted on base points.
	BonusRate = 0.10
)

type Result struct {
	AmountSupplyKRW int `json:"amount_supply_krw"`
	AmountPayKRW    int `json:"amount_pay_krw"`
	BasePoints      int `json:"base_points"`
	BonusPoints     int `json:"bonus_points"`
	CreditedPoints  int `json:"credited_points"`
}

// Calc maps a supply (pre-VAT) amount to the paid amount and point yield.
// Pure; malformed input is clamped rather than rejected.
func Calc(amountSupplyKRW float64) Result {
	safe := 0
	if !math.IsNaN(amountSupplyKRW) && !math.IsInf(amountSupplyKRW, 0) && amountSupplyKRW > 0 {
		safe = int(math.Floor(amountSupplyKRW))
	}

	pay := int(math.Round(float64(safe) * (1 + VATRate)))
	base := pay / PointsPerKRW
	bonus := int(math.Floor(float64(base) * BonusRate))

	return Result{
		AmountSupplyKRW: safe,
		AmountPayKRW:    pay,
		BasePoints:      base,
		BonusPoints:     bonus,
		CreditedPoints:  base + bonus,
	}
}
