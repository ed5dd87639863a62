package entities

import (
	"strings"
	"time"
)

// OrderStatus is the backend lifecycle of an order record.
//
// Only pending_payment and in_progress drive where a resumed checkout starts;
// the other values are informational for staff.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusInProgress     OrderStatus = "in_progress"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type ServiceType string

const (
	ServiceTypeTranslation ServiceType = "translation"
	ServiceTypeEvaluation  ServiceType = "evaluation"
	ServiceTypeExpert      ServiceType = "expert"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeTranslation, ServiceTypeEvaluation, ServiceTypeExpert:
		return true
	}
	return false
}

type EvaluationType string

const (
	EvaluationTypeDocument EvaluationType = "document"
	EvaluationTypeCourse   EvaluationType = "course"
)

func (t EvaluationType) Valid() bool {
	return t == EvaluationTypeDocument || t == EvaluationTypeCourse
}

type Urgency string

const (
	UrgencyStandard  Urgency = "standard"
	UrgencyExpedited Urgency = "expedited"
	UrgencyRush      Urgency = "rush"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyStandard, UrgencyExpedited, UrgencyRush:
		return true
	}
	return false
}

type DeliveryType string

const (
	DeliveryTypeEmail         DeliveryType = "email"
	DeliveryTypeExpress       DeliveryType = "express"
	DeliveryTypeInternational DeliveryType = "international"
)

func (d DeliveryType) Valid() bool {
	switch d {
	case DeliveryTypeEmail, DeliveryTypeExpress, DeliveryTypeInternational:
		return true
	}
	return false
}

type PaymentMethod string

// PaymentMethodCard is the only supported method.
const PaymentMethodCard PaymentMethod = "card"

type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Company   string `json:"company,omitempty"`
}

// FullName is the billing name sent to the payment provider.
func (c CustomerInfo) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type ShippingInfo struct {
	Country   string `json:"country"`
	Address   string `json:"address"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// Complete reports whether every shipping field is filled.
func (s ShippingInfo) Complete() bool {
	for _, v := range []string{s.Country, s.Address, s.Apartment, s.City, s.State, s.Zip} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// ServiceInfo is the service selection of an order.
//
// Exactly one type-specific group is meaningful, chosen by Type:
//   - translation: LanguageFrom, LanguageTo, PageCount
//   - evaluation: EvaluationType
//   - expert: VisaType
type ServiceInfo struct {
	Type ServiceType `json:"type,omitempty"`

	LanguageFrom string `json:"language_from,omitempty"`
	LanguageTo   string `json:"language_to,omitempty"`
	PageCount    int    `json:"page_count"`

	EvaluationType EvaluationType `json:"evaluation_type,omitempty"`

	VisaType string `json:"visa_type,omitempty"`

	Urgency             Urgency      `json:"urgency"`
	DeliveryType        DeliveryType `json:"delivery_type"`
	SpecialInstructions string       `json:"special_instructions,omitempty"`
	ShippingInfo        ShippingInfo `json:"shipping_info"`
}

// NeedsShipping reports whether the delivery type requires a postal address.
func (s ServiceInfo) NeedsShipping() bool {
	return s.DeliveryType != "" && s.DeliveryType != DeliveryTypeEmail
}

func DefaultServiceInfo() ServiceInfo {
	return ServiceInfo{
		PageCount:    1,
		Urgency:      UrgencyStandard,
		DeliveryType: DeliveryTypeEmail,
	}
}

type PaymentInfo struct {
	Method PaymentMethod `json:"method"`
}

// OrderData is the in-progress order owned by one checkout session.
type OrderData struct {
	CustomerInfo CustomerInfo    `json:"customer_info"`
	Documents    []DocumentState `json:"documents"`
	Services     ServiceInfo     `json:"services"`
	Payment      PaymentInfo     `json:"payment"`
}

func NewOrderData() OrderData {
	return OrderData{
		Documents: []DocumentState{},
		Services:  DefaultServiceInfo(),
		Payment:   PaymentInfo{Method: PaymentMethodCard},
	}
}

// Clone returns a copy that shares no slices with d.
func (d OrderData) Clone() OrderData {
	out := d
	out.Documents = make([]DocumentState, len(d.Documents))
	for i, doc := range d.Documents {
		out.Documents[i] = doc.clone()
	}
	return out
}

// OrderRecord is the persisted backend order.
//
// Services is kept as the loosely typed map the storefront writes; readers
// must validate it before trusting any field.
type OrderRecord struct {
	ID            string         `json:"id"`
	Status        OrderStatus    `json:"status"`
	Customer      CustomerInfo   `json:"customer"`
	Services      map[string]any `json:"services,omitempty"`
	DocumentPaths []string       `json:"document_paths,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
