package checkout

import (
	"encoding/json"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"fmt"
	"sync"
)

// Section names one mergeable part of OrderData. Documents are not a
// section; they change only through the document updaters.
type Section string

const (
	SectionCustomer Section = "customer"
	SectionServices Section = "services"
	SectionPayment  Section = "payment"
)

var (
	ErrUnknownSection = errors.New("unknown order section")
	ErrInvalidPatch   = errors.New("invalid order data")
)

type CustomerPatch struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
}

// ServicesPatch replaces ShippingInfo as a whole when set.
type ServicesPatch struct {
	Type                *entities.ServiceType    `json:"type"`
	LanguageFrom        *string                  `json:"language_from"`
	LanguageTo          *string                  `json:"language_to"`
	PageCount           *int                     `json:"page_count"`
	EvaluationType      *entities.EvaluationType `json:"evaluation_type"`
	VisaType            *string                  `json:"visa_type"`
	Urgency             *entities.Urgency        `json:"urgency"`
	DeliveryType        *entities.DeliveryType   `json:"delivery_type"`
	SpecialInstructions *string                  `json:"special_instructions"`
	ShippingInfo        *entities.ShippingInfo   `json:"shipping_info"`
}

func (p ServicesPatch) validate() error {
	switch {
	case p.Type != nil && !p.Type.Valid():
		return fmt.Errorf("%w: type %q", ErrInvalidPatch, *p.Type)
	case p.EvaluationType != nil && *p.EvaluationType != "" && !p.EvaluationType.Valid():
		return fmt.Errorf("%w: evaluation_type %q", ErrInvalidPatch, *p.EvaluationType)
	case p.Urgency != nil && !p.Urgency.Valid():
		return fmt.Errorf("%w: urgency %q", ErrInvalidPatch, *p.Urgency)
	case p.DeliveryType != nil && !p.DeliveryType.Valid():
		return fmt.Errorf("%w: delivery_type %q", ErrInvalidPatch, *p.DeliveryType)
	case p.PageCount != nil && *p.PageCount < 1:
		return fmt.Errorf("%w: page_count must be at least 1", ErrInvalidPatch)
	}
	return nil
}

type PaymentPatch struct {
	Method *entities.PaymentMethod `json:"method"`
}

// Store holds the OrderData of one checkout. Every update is applied under
// the lock and is visible to the next Snapshot.
type Store struct {
	mu   sync.RWMutex
	data entities.OrderData
}

func NewStore(initial entities.OrderData) *Store {
	data := initial.Clone()
	if data.Documents == nil {
		data.Documents = []entities.DocumentState{}
	}
	return &Store{data: data}
}

// Snapshot returns a deep copy of the current order data.
func (s *Store) Snapshot() entities.OrderData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

func (s *Store) UpdateCustomerInfo(p CustomerPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &s.data.CustomerInfo
	setIf(&c.Email, p.Email)
	setIf(&c.FirstName, p.FirstName)
	setIf(&c.LastName, p.LastName)
	setIf(&c.Phone, p.Phone)
	setIf(&c.Company, p.Company)
}

func (s *Store) UpdateServices(p ServicesPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv := &s.data.Services
	setIf(&sv.Type, p.Type)
	setIf(&sv.LanguageFrom, p.LanguageFrom)
	setIf(&sv.LanguageTo, p.LanguageTo)
	setIf(&sv.PageCount, p.PageCount)
	setIf(&sv.EvaluationType, p.EvaluationType)
	setIf(&sv.VisaType, p.VisaType)
	setIf(&sv.Urgency, p.Urgency)
	setIf(&sv.DeliveryType, p.DeliveryType)
	setIf(&sv.SpecialInstructions, p.SpecialInstructions)
	setIf(&sv.ShippingInfo, p.ShippingInfo)
}

func (s *Store) UpdatePayment(p PaymentPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setIf(&s.data.Payment.Method, p.Method)
}

// UpdateSection decodes a JSON partial for section and merges it.
// Absent keys leave the current values untouched.
func (s *Store) UpdateSection(section Section, raw json.RawMessage) error {
	switch section {
	case SectionCustomer:
		var p CustomerPatch
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
		}
		s.UpdateCustomerInfo(p)
	case SectionServices:
		var p ServicesPatch
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
		}
		if err := p.validate(); err != nil {
			return err
		}
		s.UpdateServices(p)
	case SectionPayment:
		var p PaymentPatch
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
		}
		if p.Method != nil && *p.Method != entities.PaymentMethodCard {
			return fmt.Errorf("%w: unsupported payment method %q", ErrInvalidPatch, *p.Method)
		}
		s.UpdatePayment(p)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	return nil
}

// UpdateDocuments applies fn to the latest document list. Concurrent
// callers never observe a stale list.
func (s *Store) UpdateDocuments(fn func([]entities.DocumentState) []entities.DocumentState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.data.Clone().Documents
	next := fn(current)
	if next == nil {
		next = []entities.DocumentState{}
	}
	s.data.Documents = next
}

func (s *Store) ReplaceDocuments(docs []entities.DocumentState) {
	s.UpdateDocuments(func([]entities.DocumentState) []entities.DocumentState {
		return entities.OrderData{Documents: docs}.Clone().Documents
	})
}

// Reset swaps the whole order data, used when a resume link is dead.
func (s *Store) Reset(data entities.OrderData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
