package request

type QuoteRequest struct {
	Customer CustomerRequest `json:"customer"`
	Services ServicesRequest `json:"services"`
}
