package request

import (
	"evaluation_orders/internal/domain/entities"
	"strings"
)

type CustomerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
}

func (r CustomerRequest) ToCustomer() entities.CustomerInfo {
	return entities.CustomerInfo{
		Email:     strings.TrimSpace(r.Email),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Phone:     strings.TrimSpace(r.Phone),
		Company:   strings.TrimSpace(r.Company),
	}
}

type ShippingRequest struct {
	Country   string `json:"country"`
	Address   string `json:"address"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// ServicesRequest is a full service selection. Omitted urgency, delivery
// and page count take the checkout defaults.
type ServicesRequest struct {
	Type                string          `json:"type" binding:"omitempty,oneof=translation evaluation expert"`
	LanguageFrom        string          `json:"language_from"`
	LanguageTo          string          `json:"language_to"`
	PageCount           int             `json:"page_count" binding:"omitempty,min=1"`
	EvaluationType      string          `json:"evaluation_type" binding:"omitempty,oneof=document course"`
	VisaType            string          `json:"visa_type"`
	Urgency             string          `json:"urgency" binding:"omitempty,oneof=standard expedited rush"`
	DeliveryType        string          `json:"delivery_type" binding:"omitempty,oneof=email express international"`
	SpecialInstructions string          `json:"special_instructions"`
	ShippingInfo        ShippingRequest `json:"shipping_info"`
}

func (r ServicesRequest) ToServiceInfo() entities.ServiceInfo {
	s := entities.DefaultServiceInfo()
	s.Type = entities.ServiceType(r.Type)
	s.LanguageFrom = strings.TrimSpace(r.LanguageFrom)
	s.LanguageTo = strings.TrimSpace(r.LanguageTo)
	if r.PageCount > 0 {
		s.PageCount = r.PageCount
	}
	s.EvaluationType = entities.EvaluationType(r.EvaluationType)
	s.VisaType = strings.TrimSpace(r.VisaType)
	if r.Urgency != "" {
		s.Urgency = entities.Urgency(r.Urgency)
	}
	if r.DeliveryType != "" {
		s.DeliveryType = entities.DeliveryType(r.DeliveryType)
	}
	s.SpecialInstructions = r.SpecialInstructions
	s.ShippingInfo = entities.ShippingInfo(r.ShippingInfo)
	return s
}

type DocumentPathRequest struct {
	Path string `json:"path" binding:"required"`
}
