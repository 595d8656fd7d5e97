package stages

import (
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/models"

	"github.com/shopspring/decimal"
)

type Pricing struct {
	Currency      string
	Stage1        decimal.Decimal
	Stage2        decimal.Decimal
	Stage3Morning decimal.Decimal
	Stage3FullDay decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		Currency:      "USD",
		Stage1:        decimal.RequireFromString("30.00"),
		Stage2:        decimal.RequireFromString("100.00"),
		Stage3Morning: decimal.RequireFromString("120.00"),
		Stage3FullDay: decimal.RequireFromString("200.00"),
	}
}

func NewPricing(pricingConfig config.AppPricing) Pricing {
	return Pricing{
		Currency:      pricingConfig.Currency,
		Stage1:        pricingConfig.Stage1Amount,
		Stage2:        pricingConfig.Stage2Amount,
		Stage3Morning: pricingConfig.Stage3MorningAmount,
		Stage3FullDay: pricingConfig.Stage3FullDayAmount,
	}
}

// AmountFor reports false for stage 3 until a companion request with a
// known duration is attached.
func (p Pricing) AmountFor(c *models.Case, stage int) (decimal.Decimal, bool) {
	switch stage {
	case models.Stage1:
		return p.Stage1, true
	case models.Stage2:
		return p.Stage2, true
	case models.Stage3:
		if c.CompanionRequest == nil {
			return decimal.Zero, false
		}
		switch c.CompanionRequest.Duration {
		case models.CompanionDurationMorning:
			return p.Stage3Morning, true
		case models.CompanionDurationFullDay:
			return p.Stage3FullDay, true
		}
	}
	return decimal.Zero, false
}
