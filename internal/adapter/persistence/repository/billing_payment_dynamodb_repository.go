package repository

import (
	"context"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName  = "billing_payments"
	paymentsOrderIDIndex      = "order_id-index"
	paymentsClientSecretIndex = "client_secret-index"
)

type billingPaymentItem struct {
	ID                string                 `json:"id"`
	OrderID           string                 `json:"order_id"`
	AmountCents       int64                  `json:"amount_cents"`
	Currency          string                 `json:"currency"`
	ClientSecret      string                 `json:"client_secret"`
	Status            string                 `json:"status"`
	StatusDetail      string                 `json:"status_detail,omitempty"`
	ProviderPaymentID string                 `json:"provider_payment_id,omitempty"`
	Metadata          map[string]string      `json:"metadata,omitempty"`
	Date              string                 `json:"date"`
	MPPayload         map[string]interface{} `json:"mp_payload,omitempty"`
	MPPayloadRaw      string                 `json:"mp_payload_raw,omitempty"`
}

// BillingPaymentDynamoRepository persists BillingPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
//   - GSI: client_secret-index (PK: client_secret)

type BillingPaymentDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentDynamoRepository)(nil)

func NewBillingPaymentDynamoRepository(ddb *dynamodb.Client, tableName string) *BillingPaymentDynamoRepository {
	return newBillingPaymentDynamoRepository(ddb, tableName)
}

func newBillingPaymentDynamoRepository(ddb dynamoAPI, tableName string) *BillingPaymentDynamoRepository {
	if tableName == "" {
		tableName = defaultPaymentsTableName
	}
	return &BillingPaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *BillingPaymentDynamoRepository) Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	av, err := marshalItem(toBillingPaymentItem(p))
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if err := putNew(ctx, r.ddb, r.tableName, av); err != nil {
		return entities.BillingPayment{}, err
	}
	return p, nil
}

func (r *BillingPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	raw, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil || raw == nil {
		return entities.BillingPayment{}, err
	}
	return decodeBillingPayment(raw)
}

func (r *BillingPaymentDynamoRepository) GetByClientSecret(ctx context.Context, secret string) (entities.BillingPayment, error) {
	items, err := r.query(ctx, paymentsClientSecretIndex, "client_secret", secret)
	if err != nil || len(items) == 0 {
		return entities.BillingPayment{}, err
	}
	return items[0], nil
}

func (r *BillingPaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.BillingPayment, error) {
	return r.query(ctx, paymentsOrderIDIndex, "order_id", orderID)
}

func (r *BillingPaymentDynamoRepository) UpdateOutcome(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	values := map[string]types.AttributeValue{
		":status":        &types.AttributeValueMemberS{Value: string(p.Status)},
		":status_detail": &types.AttributeValueMemberS{Value: p.StatusDetail},
		":provider_id":   &types.AttributeValueMemberS{Value: p.ProviderPaymentID},
		":date":          &types.AttributeValueMemberS{Value: formatTime(p.Date)},
		":raw":           &types.AttributeValueMemberS{Value: string(p.MPPayloadRaw)},
	}
	expr := "SET #status = :status, #status_detail = :status_detail, #provider_payment_id = :provider_id, #date = :date, #mp_payload_raw = :raw"
	names := map[string]string{
		"#status":              "status",
		"#status_detail":       "status_detail",
		"#provider_payment_id": "provider_payment_id",
		"#date":                "date",
		"#mp_payload_raw":      "mp_payload_raw",
	}
	if len(p.MPPayload) > 0 {
		av, err := marshalValue(p.MPPayload)
		if err != nil {
			return entities.BillingPayment{}, err
		}
		values[":payload"] = av
		names["#mp_payload"] = "mp_payload"
		expr += ", #mp_payload = :payload"
	}

	raw, err := updateExisting(ctx, r.ddb, r.tableName, p.ID, expr, values, names)
	if err != nil || raw == nil {
		return entities.BillingPayment{}, err
	}
	return decodeBillingPayment(raw)
}

func (r *BillingPaymentDynamoRepository) query(ctx context.Context, index, attr, value string) ([]entities.BillingPayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.BillingPayment, 0, len(out.Items))
	for _, raw := range out.Items {
		p, err := decodeBillingPayment(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

func decodeBillingPayment(raw map[string]types.AttributeValue) (entities.BillingPayment, error) {
	var it billingPaymentItem
	if err := unmarshalItem(raw, &it); err != nil {
		return entities.BillingPayment{}, err
	}
	return fromBillingPaymentItem(it), nil
}

func toBillingPaymentItem(p entities.BillingPayment) billingPaymentItem {
	return billingPaymentItem{
		ID:                p.ID,
		OrderID:           p.OrderID,
		AmountCents:       p.AmountCents,
		Currency:          p.Currency,
		ClientSecret:      p.ClientSecret,
		Status:            string(p.Status),
		StatusDetail:      p.StatusDetail,
		ProviderPaymentID: p.ProviderPaymentID,
		Metadata:          p.Metadata,
		Date:              formatTime(p.Date),
		MPPayload:         p.MPPayload,
		MPPayloadRaw:      string(p.MPPayloadRaw),
	}
}

func fromBillingPaymentItem(it billingPaymentItem) entities.BillingPayment {
	p := entities.BillingPayment{
		ID:                it.ID,
		OrderID:           it.OrderID,
		AmountCents:       it.AmountCents,
		Currency:          it.Currency,
		ClientSecret:      it.ClientSecret,
		Status:            entities.PaymentStatus(it.Status),
		StatusDetail:      it.StatusDetail,
		ProviderPaymentID: it.ProviderPaymentID,
		Metadata:          it.Metadata,
		Date:              parseTime(it.Date),
		MPPayload:         it.MPPayload,
	}
	if it.MPPayloadRaw != "" {
		p.MPPayloadRaw = []byte(it.MPPayloadRaw)
	}
	return p
}
