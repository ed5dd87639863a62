package repository

import (
	"context"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrdersTableName = "orders"

type orderItem struct {
	ID            string                `json:"id"`
	Status        string                `json:"status"`
	Customer      entities.CustomerInfo `json:"customer"`
	Services      map[string]any        `json:"services,omitempty"`
	DocumentPaths []string              `json:"document_paths,omitempty"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

// OrderDynamoRepository persists OrderRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type OrderDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client, tableName string) *OrderDynamoRepository {
	return newOrderDynamoRepository(ddb, tableName)
}

func newOrderDynamoRepository(ddb dynamoAPI, tableName string) *OrderDynamoRepository {
	if tableName == "" {
		tableName = defaultOrdersTableName
	}
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.OrderRecord) (entities.OrderRecord, error) {
	av, err := marshalItem(toOrderItem(o))
	if err != nil {
		return entities.OrderRecord{}, err
	}
	if err := putNew(ctx, r.ddb, r.tableName, av); err != nil {
		return entities.OrderRecord{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.OrderRecord, error) {
	raw, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil || raw == nil {
		return entities.OrderRecord{}, err
	}
	return decodeOrder(raw)
}

func (r *OrderDynamoRepository) UpdateServices(ctx context.Context, id string, services map[string]any) (entities.OrderRecord, error) {
	av, err := marshalValue(services)
	if err != nil {
		return entities.OrderRecord{}, err
	}
	return r.update(ctx, id,
		"SET #services = :services, #updated_at = :updated_at",
		map[string]types.AttributeValue{":services": av},
		map[string]string{"#services": "services"},
	)
}

func (r *OrderDynamoRepository) AppendDocumentPath(ctx context.Context, id string, path string) (entities.OrderRecord, error) {
	return r.update(ctx, id,
		"SET #document_paths = list_append(if_not_exists(#document_paths, :empty), :path), #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":path":  &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: path}}},
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		},
		map[string]string{"#document_paths": "document_paths"},
	)
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.OrderRecord, error) {
	return r.update(ctx, id,
		"SET #status = :status, #updated_at = :updated_at",
		map[string]types.AttributeValue{":status": &types.AttributeValueMemberS{Value: string(status)}},
		map[string]string{"#status": "status"},
	)
}

func (r *OrderDynamoRepository) update(ctx context.Context, id, expr string, values map[string]types.AttributeValue, names map[string]string) (entities.OrderRecord, error) {
	values[":updated_at"] = &types.AttributeValueMemberS{Value: nowString()}
	names["#updated_at"] = "updated_at"

	raw, err := updateExisting(ctx, r.ddb, r.tableName, id, expr, values, names)
	if err != nil || raw == nil {
		return entities.OrderRecord{}, err
	}
	return decodeOrder(raw)
}

func decodeOrder(raw map[string]types.AttributeValue) (entities.OrderRecord, error) {
	var it orderItem
	if err := unmarshalItem(raw, &it); err != nil {
		return entities.OrderRecord{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.OrderRecord) orderItem {
	return orderItem{
		ID:            o.ID,
		Status:        string(o.Status),
		Customer:      o.Customer,
		Services:      o.Services,
		DocumentPaths: o.DocumentPaths,
		CreatedAt:     formatTime(o.CreatedAt),
		UpdatedAt:     formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.OrderRecord {
	return entities.OrderRecord{
		ID:            it.ID,
		Status:        entities.OrderStatus(it.Status),
		Customer:      it.Customer,
		Services:      it.Services,
		DocumentPaths: it.DocumentPaths,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
