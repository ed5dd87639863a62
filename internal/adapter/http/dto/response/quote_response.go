package response

import (
	"evaluation_orders/internal/domain/entities"
	"time"
)

type QuoteResponse struct {
	QuoteID       string                `json:"quote_id"`
	ID            string                `json:"id"`
	Customer      entities.CustomerInfo `json:"customer"`
	Services      entities.ServiceInfo  `json:"services"`
	Price         float64               `json:"price"`
	Status        string                `json:"status"`
	DocumentPaths []string              `json:"document_paths,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		QuoteID:       q.ID,
		ID:            q.ID,
		Customer:      q.Customer,
		Services:      q.Services,
		Price:         q.Price,
		Status:        string(q.Status),
		DocumentPaths: q.DocumentPaths,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
