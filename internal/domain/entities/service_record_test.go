package entities

import "testing"

func TestServiceInfoRecordRoundTrip(t *testing.T) {
	in := ServiceInfo{
		Type:         ServiceTypeTranslation,
		LanguageFrom: "Portuguese",
		LanguageTo:   "English",
		PageCount:    4,
		Urgency:      UrgencyRush,
		DeliveryType: DeliveryTypeExpress,
		ShippingInfo: ShippingInfo{Country: "US", Address: "1 Main St", Apartment: "2B", City: "Austin", State: "TX", Zip: "73301"},
	}
	got := ServiceInfoFromRecord(ServiceInfoToRecord(in))
	if got != in {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", in, got)
	}
}

func TestServiceInfoFromRecord_Validation(t *testing.T) {
	got := ServiceInfoFromRecord(map[string]any{
		"type":           "evaluation",
		"evaluationType": "course",
		"urgency":        "whenever",
		"deliveryType":   "pigeon",
		"pageCount":      2.5,
	})
	if got.Type != ServiceTypeEvaluation || got.EvaluationType != EvaluationTypeCourse {
		t.Fatalf("expected camelCase keys to be accepted: %+v", got)
	}
	if got.Urgency != UrgencyStandard || got.DeliveryType != DeliveryTypeEmail || got.PageCount != 1 {
		t.Fatalf("invalid values must fall back to defaults: %+v", got)
	}

	if empty := ServiceInfoFromRecord(nil); empty != DefaultServiceInfo() {
		t.Fatalf("nil record should give defaults: %+v", empty)
	}
	if bad := ServiceInfoFromRecord(map[string]any{"type": 12, "page_count": "3"}); bad.Type != "" || bad.PageCount != 3 {
		t.Fatalf("unexpected parse: %+v", bad)
	}
}

func TestCustomerInfo_Validate(t *testing.T) {
	if err := (CustomerInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := (CustomerInfo{FirstName: "Jane", Email: "nope"}).Validate()
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Fields) != 2 || verr.Fields[0] != "last_name" || verr.Fields[1] != "email" {
		t.Fatalf("unexpected fields: %v", verr.Fields)
	}
	if IsValidEmail("") || !IsValidEmail(" x@y.com ") {
		t.Fatalf("unexpected email validation result")
	}
}
