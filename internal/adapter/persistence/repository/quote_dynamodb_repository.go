package repository

import (
	"context"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/usecase/interfaces"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuotesTableName = "quotes"

type quoteItem struct {
	ID            string                `json:"id"`
	Customer      entities.CustomerInfo `json:"customer"`
	Services      entities.ServiceInfo  `json:"services"`
	Price         string                `json:"price"`
	Status        string                `json:"status"`
	DocumentPaths []string              `json:"document_paths,omitempty"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type QuoteDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, tableName string) *QuoteDynamoRepository {
	return newQuoteDynamoRepository(ddb, tableName)
}

func newQuoteDynamoRepository(ddb dynamoAPI, tableName string) *QuoteDynamoRepository {
	if tableName == "" {
		tableName = defaultQuotesTableName
	}
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := marshalItem(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}
	if err := putNew(ctx, r.ddb, r.tableName, av); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	raw, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil || raw == nil {
		return entities.Quote{}, err
	}
	return decodeQuote(raw)
}

func (r *QuoteDynamoRepository) UpdateStatusByID(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	return r.update(ctx, id,
		"SET #status = :status, #updated_at = :updated_at",
		map[string]types.AttributeValue{":status": &types.AttributeValueMemberS{Value: string(status)}},
		map[string]string{"#status": "status"},
	)
}

func (r *QuoteDynamoRepository) AppendDocumentPath(ctx context.Context, id string, path string) (entities.Quote, error) {
	return r.update(ctx, id,
		"SET #document_paths = list_append(if_not_exists(#document_paths, :empty), :path), #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":path":  &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: path}}},
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		},
		map[string]string{"#document_paths": "document_paths"},
	)
}

func (r *QuoteDynamoRepository) update(ctx context.Context, id, expr string, values map[string]types.AttributeValue, names map[string]string) (entities.Quote, error) {
	values[":updated_at"] = &types.AttributeValueMemberS{Value: nowString()}
	names["#updated_at"] = "updated_at"

	raw, err := updateExisting(ctx, r.ddb, r.tableName, id, expr, values, names)
	if err != nil || raw == nil {
		return entities.Quote{}, err
	}
	return decodeQuote(raw)
}

func decodeQuote(raw map[string]types.AttributeValue) (entities.Quote, error) {
	var it quoteItem
	if err := unmarshalItem(raw, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:            q.ID,
		Customer:      q.Customer,
		Services:      q.Services,
		Price:         floatToString(q.Price),
		Status:        string(q.Status),
		DocumentPaths: q.DocumentPaths,
		CreatedAt:     formatTime(q.CreatedAt),
		UpdatedAt:     formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	price, _ := strconv.ParseFloat(it.Price, 64)
	return entities.Quote{
		ID:            it.ID,
		Customer:      it.Customer,
		Services:      it.Services,
		Price:         price,
		Status:        entities.QuoteStatus(it.Status),
		DocumentPaths: it.DocumentPaths,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
