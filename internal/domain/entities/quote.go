package entities

import "time"

// QuoteStatus represents the lifecycle of a quote.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

// Quote is a pre-order price estimate persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Documents attached to a quote live under a temporary storage namespace
// until the quote is paid.
type Quote struct {
	ID            string       `json:"id"`
	Customer      CustomerInfo `json:"customer"`
	Services      ServiceInfo  `json:"services"`
	Price         float64      `json:"price"`
	Status        QuoteStatus  `json:"status"`
	DocumentPaths []string     `json:"document_paths,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
