package response

import (
	"evaluation_orders/internal/domain/entities"
	"time"
)

type OrderResponse struct {
	OrderID       string                `json:"order_id"`
	ID            string                `json:"id"`
	Status        string                `json:"status"`
	Customer      entities.CustomerInfo `json:"customer"`
	Services      entities.ServiceInfo  `json:"services"`
	DocumentPaths []string              `json:"document_paths"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// FromOrder parses the stored service record into the typed selection.
func FromOrder(o entities.OrderRecord) OrderResponse {
	paths := o.DocumentPaths
	if paths == nil {
		paths = []string{}
	}
	return OrderResponse{
		OrderID:       o.ID,
		ID:            o.ID,
		Status:        string(o.Status),
		Customer:      o.Customer,
		Services:      entities.ServiceInfoFromRecord(o.Services),
		DocumentPaths: paths,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
