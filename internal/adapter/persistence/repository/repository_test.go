package repository

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	put    *dynamodb.PutItemInput
	get    *dynamodb.GetItemInput
	update *dynamodb.UpdateItemInput
	query  *dynamodb.QueryInput

	item      map[string]types.AttributeValue
	items     []map[string]types.AttributeValue
	updateErr error
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.put = in
	f.item = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.get = in
	return &dynamodb.GetItemOutput{Item: f.item}, nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.update = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.item}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.query = in
	return &dynamodb.QueryOutput{Items: f.items}, nil
}

func TestOrderDynamoRepository_CreateAndGet(t *testing.T) {
	ddb := &fakeDynamo{}
	r := newOrderDynamoRepository(ddb, "")

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	o := entities.OrderRecord{
		ID:        "ord-1",
		Status:    entities.OrderStatusPending,
		Customer:  entities.CustomerInfo{Email: "ana@example.com", FirstName: "Ana"},
		Services:  map[string]any{"type": "translation", "page_count": 2},
		CreatedAt: created,
		UpdatedAt: created,
	}
	if _, err := r.Create(context.Background(), o); err != nil {
		t.Fatalf("create: %v", err)
	}
	if aws.ToString(ddb.put.TableName) != "orders" || !strings.Contains(aws.ToString(ddb.put.ConditionExpression), "attribute_not_exists") {
		t.Fatalf("unexpected put: %+v", ddb.put)
	}
	if _, ok := ddb.put.Item["customer"].(*types.AttributeValueMemberM); !ok {
		t.Fatalf("customer should be stored as a map, got %T", ddb.put.Item["customer"])
	}

	got, err := r.GetByID(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "ord-1" || got.Customer.Email != "ana@example.com" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got.Services["type"] != "translation" {
		t.Fatalf("unexpected services: %+v", got.Services)
	}
	if !aws.ToBool(ddb.get.ConsistentRead) {
		t.Fatalf("expected consistent read")
	}
}

func TestOrderDynamoRepository_GetByID_NotFound(t *testing.T) {
	r := newOrderDynamoRepository(&fakeDynamo{}, "orders-test")

	got, err := r.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "" {
		t.Fatalf("expected zero record, got %+v", got)
	}
}

func TestOrderDynamoRepository_AppendDocumentPath(t *testing.T) {
	ddb := &fakeDynamo{}
	r := newOrderDynamoRepository(ddb, "")
	ddb.item, _ = marshalItem(toOrderItem(entities.OrderRecord{ID: "ord-1", DocumentPaths: []string{"ord-1/a.pdf"}}))

	got, err := r.AppendDocumentPath(context.Background(), "ord-1", "ord-1/a.pdf")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if got.ID != "ord-1" || len(got.DocumentPaths) != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	expr := aws.ToString(ddb.update.UpdateExpression)
	if !strings.Contains(expr, "list_append(if_not_exists(#document_paths, :empty), :path)") {
		t.Fatalf("unexpected update expression: %s", expr)
	}
	if aws.ToString(ddb.update.ConditionExpression) != "attribute_exists(#id)" || ddb.update.ExpressionAttributeNames["#id"] != "id" {
		t.Fatalf("update must be conditional on existence")
	}
	if _, ok := ddb.update.ExpressionAttributeValues[":updated_at"]; !ok {
		t.Fatalf("expected updated_at to be set")
	}
}

func TestOrderDynamoRepository_UpdateMissing(t *testing.T) {
	ddb := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{}}
	r := newOrderDynamoRepository(ddb, "")

	got, err := r.UpdateStatus(context.Background(), "missing", entities.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "" {
		t.Fatalf("expected zero record, got %+v", got)
	}

	ddb.updateErr = errors.New("throttled")
	if _, err := r.UpdateStatus(context.Background(), "x", entities.OrderStatusProcessing); err == nil {
		t.Fatalf("expected error")
	}
}

func TestQuoteDynamoRepository_RoundTrip(t *testing.T) {
	ddb := &fakeDynamo{}
	r := newQuoteDynamoRepository(ddb, "")

	q := entities.Quote{
		ID:       "q-1",
		Customer: entities.CustomerInfo{Email: "bo@example.com"},
		Services: entities.ServiceInfo{Type: entities.ServiceTypeEvaluation, EvaluationType: entities.EvaluationTypeCourse, Urgency: entities.UrgencyRush},
		Price:    299.5,
		Status:   entities.QuoteStatusPending,
	}
	if _, err := r.Create(context.Background(), q); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p, ok := ddb.put.Item["price"].(*types.AttributeValueMemberS); !ok || p.Value != "299.5" {
		t.Fatalf("unexpected price attribute: %#v", ddb.put.Item["price"])
	}

	got, err := r.GetByID(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Price != 299.5 || got.Services.EvaluationType != entities.EvaluationTypeCourse || got.Status != entities.QuoteStatusPending {
		t.Fatalf("unexpected quote: %+v", got)
	}

	if _, err := r.UpdateStatusByID(context.Background(), "q-1", entities.QuoteStatusApproved); err != nil {
		t.Fatalf("update: %v", err)
	}
	if v := ddb.update.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS).Value; v != "approved" {
		t.Fatalf("unexpected status value: %s", v)
	}
}

func TestBillingPaymentDynamoRepository_Queries(t *testing.T) {
	ddb := &fakeDynamo{}
	r := newBillingPaymentDynamoRepository(ddb, "")

	stored, _ := marshalItem(toBillingPaymentItem(entities.BillingPayment{
		ID:           "pay-1",
		OrderID:      "ord-1",
		AmountCents:  15000,
		Currency:     "usd",
		ClientSecret: "pay-1_secret",
		Status:       entities.PaymentStatusPending,
	}))
	ddb.items = []map[string]types.AttributeValue{stored}

	got, err := r.GetByClientSecret(context.Background(), "pay-1_secret")
	if err != nil {
		t.Fatalf("get by secret: %v", err)
	}
	if got.ID != "pay-1" || got.AmountCents != 15000 || got.ClientSecret != "pay-1_secret" {
		t.Fatalf("unexpected payment: %+v", got)
	}
	if aws.ToString(ddb.query.IndexName) != "client_secret-index" || ddb.query.ExpressionAttributeNames["#k"] != "client_secret" {
		t.Fatalf("unexpected query: %+v", ddb.query)
	}

	list, err := r.ListByOrderID(context.Background(), "ord-1")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %d", err, len(list))
	}
	if aws.ToString(ddb.query.IndexName) != "order_id-index" {
		t.Fatalf("unexpected index: %s", aws.ToString(ddb.query.IndexName))
	}

	ddb.items = nil
	missing, err := r.GetByClientSecret(context.Background(), "nope")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero payment, got %+v %v", missing, err)
	}
}

func TestBillingPaymentDynamoRepository_UpdateOutcome(t *testing.T) {
	ddb := &fakeDynamo{}
	r := newBillingPaymentDynamoRepository(ddb, "")
	ddb.item, _ = marshalItem(toBillingPaymentItem(entities.BillingPayment{ID: "pay-1", Status: entities.PaymentStatusApproved}))

	got, err := r.UpdateOutcome(context.Background(), entities.BillingPayment{
		ID:                "pay-1",
		Status:            entities.PaymentStatusApproved,
		ProviderPaymentID: "123",
		MPPayloadRaw:      []byte(`{"id":"123"}`),
		MPPayload:         map[string]interface{}{"id": "123"},
		Date:              time.Now(),
	})
	if err != nil {
		t.Fatalf("update outcome: %v", err)
	}
	if got.Status != entities.PaymentStatusApproved {
		t.Fatalf("unexpected status: %s", got.Status)
	}
	if !strings.Contains(aws.ToString(ddb.update.UpdateExpression), "#mp_payload = :payload") {
		t.Fatalf("expected parsed payload in update: %s", aws.ToString(ddb.update.UpdateExpression))
	}
}
