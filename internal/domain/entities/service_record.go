package entities

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ServiceInfoToRecord converts a selection into the map stored on the order
// record.
func ServiceInfoToRecord(s ServiceInfo) map[string]any {
	b, err := json.Marshal(s)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	_ = json.Unmarshal(b, &out)
	return out
}

// ServiceInfoFromRecord validates a stored services map into a ServiceInfo.
//
// Unknown enum values and malformed numbers are dropped and the defaults of
// DefaultServiceInfo are kept; both snake_case and camelCase keys are
// accepted since older storefront builds wrote camelCase.
func ServiceInfoFromRecord(raw map[string]any) ServiceInfo {
	s := DefaultServiceInfo()
	if raw == nil {
		return s
	}

	if t := ServiceType(stringField(raw, "type")); t.Valid() {
		s.Type = t
	}
	s.LanguageFrom = stringField(raw, "language_from", "languageFrom")
	s.LanguageTo = stringField(raw, "language_to", "languageTo")
	if n, ok := intField(raw, "page_count", "pageCount"); ok && n >= 1 {
		s.PageCount = n
	}
	if et := EvaluationType(stringField(raw, "evaluation_type", "evaluationType")); et.Valid() {
		s.EvaluationType = et
	}
	s.VisaType = stringField(raw, "visa_type", "visaType")
	if u := Urgency(stringField(raw, "urgency")); u.Valid() {
		s.Urgency = u
	}
	if d := DeliveryType(stringField(raw, "delivery_type", "deliveryType")); d.Valid() {
		s.DeliveryType = d
	}
	s.SpecialInstructions = stringField(raw, "special_instructions", "specialInstructions")

	if ship, ok := mapField(raw, "shipping_info", "shippingInfo"); ok {
		s.ShippingInfo = ShippingInfo{
			Country:   stringField(ship, "country"),
			Address:   stringField(ship, "address"),
			Apartment: stringField(ship, "apartment"),
			City:      stringField(ship, "city"),
			State:     stringField(ship, "state"),
			Zip:       stringField(ship, "zip"),
		}
	}
	return s
}

func lookup(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(m map[string]any, keys ...string) string {
	v, ok := lookup(m, keys...)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func intField(m map[string]any, keys ...string) (int, bool) {
	v, ok := lookup(m, keys...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

func mapField(m map[string]any, keys ...string) (map[string]any, bool) {
	v, ok := lookup(m, keys...)
	if !ok {
		return nil, false
	}
	sub, ok := v.(map[string]any)
	return sub, ok
}
