package checkout

import (
	"evaluation_orders/internal/domain/entities"
	"strings"
)

// Step is the wizard position, 0 through 4.
type Step int

const (
	StepCustomerInfo Step = iota
	StepServiceAndDocuments
	StepDelivery
	StepReview
	StepPayment
)

const stepCount = 5

var stepNames = [stepCount]string{"customer_info", "service_and_documents", "delivery", "review", "payment"}

func (s Step) Valid() bool { return s >= StepCustomerInfo && s <= StepPayment }

func (s Step) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return stepNames[s]
}

type Completion string

const (
	CompletionComplete   Completion = "complete"
	CompletionPartial    Completion = "partial"
	CompletionIncomplete Completion = "incomplete"
)

// StepCompletionStatus decorates the progress indicator. It never gates
// navigation.
func StepCompletionStatus(step Step, data entities.OrderData) Completion {
	switch step {
	case StepCustomerInfo:
		return customerCompletion(data.CustomerInfo)
	case StepServiceAndDocuments:
		return serviceCompletion(data)
	case StepDelivery:
		return deliveryCompletion(data.Services)
	case StepReview:
		return CompletionComplete
	}
	return CompletionIncomplete
}

func customerCompletion(c entities.CustomerInfo) Completion {
	present := 0
	for _, v := range []string{c.FirstName, c.LastName, c.Email} {
		if strings.TrimSpace(v) != "" {
			present++
		}
	}
	switch present {
	case 3:
		return CompletionComplete
	case 0:
		return CompletionIncomplete
	}
	return CompletionPartial
}

func serviceCompletion(data entities.OrderData) Completion {
	s := data.Services
	hasType := s.Type.Valid()
	hasDocs := len(data.Documents) > 0
	if hasType && hasDocs && typeFieldsFilled(s) {
		return CompletionComplete
	}
	if hasType || hasDocs {
		return CompletionPartial
	}
	return CompletionIncomplete
}

func typeFieldsFilled(s entities.ServiceInfo) bool {
	switch s.Type {
	case entities.ServiceTypeTranslation:
		return s.LanguageFrom != "" && s.LanguageTo != ""
	case entities.ServiceTypeEvaluation:
		return s.EvaluationType.Valid()
	case entities.ServiceTypeExpert:
		return true
	}
	return false
}

func deliveryCompletion(s entities.ServiceInfo) Completion {
	switch {
	case s.DeliveryType == entities.DeliveryTypeEmail:
		return CompletionComplete
	case s.DeliveryType == "":
		return CompletionIncomplete
	case s.ShippingInfo.Complete():
		return CompletionComplete
	}
	return CompletionPartial
}
