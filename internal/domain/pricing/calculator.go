// Package pricing turns a service selection into a price.
package pricing

import (
	"evaluation_orders/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const (
	TranslationPerPage  = 25.0
	EvaluationDocument  = 85.0
	EvaluationCourse    = 150.0
	ExpertLetter        = 599.0
	ExpressSurcharge    = 99.0
	InternationalCharge = 150.0
)

// CalculatePrice returns the USD price of a service selection.
//
// The urgency multiplier applies to the base price only; delivery is a flat
// surcharge. The result is not rounded.
func CalculatePrice(s entities.ServiceInfo) float64 {
	return BasePrice(s)*UrgencyMultiplier(s.Urgency) + DeliverySurcharge(s.DeliveryType)
}

func BasePrice(s entities.ServiceInfo) float64 {
	switch s.Type {
	case entities.ServiceTypeTranslation:
		pages := s.PageCount
		if pages < 1 {
			pages = 1
		}
		return float64(pages) * TranslationPerPage
	case entities.ServiceTypeEvaluation:
		switch s.EvaluationType {
		case entities.EvaluationTypeDocument:
			return EvaluationDocument
		case entities.EvaluationTypeCourse:
			return EvaluationCourse
		}
		return 0
	case entities.ServiceTypeExpert:
		return ExpertLetter
	}
	return 0
}

func UrgencyMultiplier(u entities.Urgency) float64 {
	switch u {
	case entities.UrgencyExpedited:
		return 1.5
	case entities.UrgencyRush:
		return 2
	}
	return 1
}

func DeliverySurcharge(d entities.DeliveryType) float64 {
	switch d {
	case entities.DeliveryTypeExpress:
		return ExpressSurcharge
	case entities.DeliveryTypeInternational:
		return InternationalCharge
	}
	return 0
}

// AmountCents is the integer amount charged to the payment provider.
// Rounding happens here and nowhere else.
func AmountCents(s entities.ServiceInfo) int64 {
	return ToCents(CalculatePrice(s))
}

func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

// Currency is the ISO code every price is expressed in.
const Currency = "usd"
