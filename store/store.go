package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/openalms/openalms/internal/keys"
)

// Doc is a raw document as stored in a collection.
type Doc map[string]types.AttributeValue

// Fields holds field values to be written, keyed by attribute name.
type Fields map[string]any

// Client is the subset of the DynamoDB API the store uses. Satisfied by
// *dynamodb.Client.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store provides document persistence for the platform's collections.
type Store struct {
	client Client
	config Config
	logger *slog.Logger
}

// New creates a new Store instance.
func New(client Client, config Config) *Store {
	return NewWithLogger(client, config, nil)
}

// NewWithLogger creates a new Store with an explicit logger.
func NewWithLogger(client Client, config Config, logger *slog.Logger) *Store {
	config.validate()
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client: client,
		config: config,
		logger: logger,
	}
}

// Timestamp formats a time the way the store records dateCreated and
// lastModified. Nanosecond precision keeps lastModified strictly increasing
// across successive mutations.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Insert writes a new document under a freshly allocated id. The id is set
// along with dateCreated, lastModified, and erased=false. The write is
// conditional on the id being unused, so an allocator race loser fails with
// ErrIDConflict instead of overwriting. Unique fields declared on the
// collection are claimed in the same transaction; a claim that is already
// held fails the insert with ErrDuplicateValue.
func (s *Store) Insert(ctx context.Context, col Collection, id string, fields Fields) (Doc, error) {
	item, err := attributevalue.MarshalMap(map[string]any(fields))
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}

	now := Timestamp(time.Now())
	item["id"] = &types.AttributeValueMemberS{Value: id}
	item["dateCreated"] = &types.AttributeValueMemberS{Value: now}
	item["lastModified"] = &types.AttributeValueMemberS{Value: now}
	item["erased"] = &types.AttributeValueMemberBOOL{Value: false}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(col.Table),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}

	for _, field := range col.Unique {
		value, ok := fields[field].(string)
		if !ok || value == "" {
			continue
		}
		constraintPK := keys.ConstraintPK(col.Type, field, value)
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(s.config.ConstraintTable),
				Item: map[string]types.AttributeValue{
					"pk":          &types.AttributeValueMemberS{Value: constraintPK},
					"sk":          &types.AttributeValueMemberS{Value: "CONSTRAINT"},
					"collection":  &types.AttributeValueMemberS{Value: col.Type},
					"field_name":  &types.AttributeValueMemberS{Value: field},
					"field_value": &types.AttributeValueMemberS{Value: value},
					"document_id": &types.AttributeValueMemberS{Value: id},
				},
				// Fails if another document already holds this value
				ConditionExpression: aws.String("attribute_not_exists(pk)"),
			},
		})
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return nil, s.mapInsertError(err)
	}

	s.logger.Debug("document inserted", "collection", col.Type, "id", id)
	return item, nil
}

// Update applies a sparse field update to an existing document and refreshes
// lastModified. Unsupplied fields are left untouched. The write is
// conditional on the document existing, so updating a vanished id fails with
// ErrNotFound rather than creating a near-empty document. Returns the full
// document after the update.
func (s *Store) Update(ctx context.Context, col Collection, id string, fields Fields) (Doc, error) {
	item, err := attributevalue.MarshalMap(map[string]any(fields))
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}

	setClauses, exprNames, exprValues := buildSetClauses(item)
	exprNames["#lastModified"] = "lastModified"
	exprValues[":lastModified"] = &types.AttributeValueMemberS{Value: Timestamp(time.Now())}
	setClauses = append(setClauses, "#lastModified = :lastModified")

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(col.Table),
		Key:                       idKey(id),
		UpdateExpression:          aws.String("SET " + joinStrings(setClauses, ", ")),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return out.Attributes, nil
}

// Append atomically appends childID to the named reference list and
// refreshes lastModified. The append happens store-side via list_append, so
// concurrent appends to the same list are both preserved. Returns the full
// document after the append.
func (s *Store) Append(ctx context.Context, col Collection, id, listField, childID string) (Doc, error) {
	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(col.Table),
		Key:                 idKey(id),
		UpdateExpression:    aws.String("SET #list = list_append(if_not_exists(#list, :empty), :child), #lastModified = :lastModified"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{
			"#list":         listField,
			"#lastModified": "lastModified",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":child": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: childID},
			}},
			":lastModified": &types.AttributeValueMemberS{Value: Timestamp(time.Now())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return out.Attributes, nil
}

// Get retrieves a document by id, returning ErrNotFound if missing or erased.
func (s *Store) Get(ctx context.Context, col Collection, id string) (Doc, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(col.Table),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	if IsErased(result.Item) {
		return nil, ErrNotFound
	}
	return result.Item, nil
}

// FindByIndex looks up a single document through a GSI by attribute
// equality. Erased documents are filtered. Returns ErrNotFound when no
// active document matches.
func (s *Store) FindByIndex(ctx context.Context, col Collection, index, attr, value string) (Doc, error) {
	exprNames := map[string]string{"#attr": attr}
	for k, v := range NotErasedFilterNames() {
		exprNames[k] = v
	}
	exprValues := map[string]types.AttributeValue{
		":value": &types.AttributeValueMemberS{Value: value},
	}
	for k, v := range NotErasedFilterValues() {
		exprValues[k] = v
	}

	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(col.Table),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#attr = :value"),
		FilterExpression:          aws.String(NotErasedFilterExpr()),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, ErrNotFound
	}
	return result.Items[0], nil
}

// IndexTerm upserts a (term, post) record in the caption search table.
func (s *Store) IndexTerm(ctx context.Context, term, postID string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.config.SearchTable),
		Key: map[string]types.AttributeValue{
			"pk":   &types.AttributeValueMemberS{Value: keys.SearchPK(term, s.config.NumSearchShards)},
			"post": &types.AttributeValueMemberS{Value: postID},
		},
		UpdateExpression: aws.String("SET #term = :term"),
		ExpressionAttributeNames: map[string]string{
			"#term": "term",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":term": &types.AttributeValueMemberS{Value: term},
		},
	})
	return err
}

// UnindexTerm removes a (term, post) record from the caption search table.
func (s *Store) UnindexTerm(ctx context.Context, term, postID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.config.SearchTable),
		Key: map[string]types.AttributeValue{
			"pk":   &types.AttributeValueMemberS{Value: keys.SearchPK(term, s.config.NumSearchShards)},
			"post": &types.AttributeValueMemberS{Value: postID},
		},
	})
	return err
}

// mapInsertError maps DynamoDB transaction errors for Insert operations.
// The document put is always the first transaction item; any other failed
// condition is a unique constraint claim.
func (s *Store) mapInsertError(err error) error {
	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for i, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				if i == 0 {
					return ErrIDConflict
				}
				return ErrDuplicateValue
			}
		}
	}
	return err
}

// idKey builds the primary key for an id-keyed document.
func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// buildSetClauses turns marshalled attributes into SET clauses with
// placeholder names, skipping store-managed fields.
func buildSetClauses(item map[string]types.AttributeValue) ([]string, map[string]string, map[string]types.AttributeValue) {
	var setClauses []string
	exprNames := map[string]string{}
	exprValues := map[string]types.AttributeValue{}

	i := 0
	for k, v := range item {
		// Skip managed fields
		if k == "id" || k == "dateCreated" || k == "lastModified" || k == "erased" {
			continue
		}
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		exprNames[nameKey] = k
		exprValues[valueKey] = v
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
		i++
	}

	return setClauses, exprNames, exprValues
}

// joinStrings joins strings with a separator (avoiding strings package import).
func joinStrings(strs []string, sep string) string {
	if len(strs) == 0 {
		return ""
	}
	result := strs[0]
	for _, s := range strs[1:] {
		result += sep + s
	}
	return result
}
