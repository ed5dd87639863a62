package pricing

import (
	"fmt"

	"evaluation_orders/internal/domain/entities"
)

// LineItems splits CalculatePrice into base service, urgency surcharge and
// delivery rows. Their prices always add up to CalculatePrice.
func LineItems(s entities.ServiceInfo) []entities.LineItem {
	if !s.Type.Valid() {
		return nil
	}
	base := BasePrice(s)
	items := []entities.LineItem{serviceLine(s, base)}

	if extra := base*UrgencyMultiplier(s.Urgency) - base; extra > 0 {
		items = append(items, entities.LineItem{
			SKU:      "urgency-" + string(s.Urgency),
			Name:     fmt.Sprintf("%s processing", s.Urgency),
			Quantity: 1,
			Price:    extra,
		})
	}
	if fee := DeliverySurcharge(s.DeliveryType); fee > 0 {
		items = append(items, entities.LineItem{
			SKU:      "delivery-" + string(s.DeliveryType),
			Name:     fmt.Sprintf("%s delivery", s.DeliveryType),
			Quantity: 1,
			Price:    fee,
		})
	}
	return items
}

func serviceLine(s entities.ServiceInfo, base float64) entities.LineItem {
	switch s.Type {
	case entities.ServiceTypeTranslation:
		pages := s.PageCount
		if pages < 1 {
			pages = 1
		}
		return entities.LineItem{
			SKU:      "translation",
			Name:     fmt.Sprintf("Certified translation %s to %s", s.LanguageFrom, s.LanguageTo),
			Quantity: pages,
			Price:    base,
		}
	case entities.ServiceTypeEvaluation:
		return entities.LineItem{
			SKU:      "evaluation-" + string(s.EvaluationType),
			Name:     fmt.Sprintf("Credential evaluation (%s)", s.EvaluationType),
			Quantity: 1,
			Price:    base,
		}
	default:
		return entities.LineItem{SKU: "expert", Name: "Expert opinion letter", Quantity: 1, Price: base}
	}
}
