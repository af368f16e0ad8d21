// Package idempotency de-duplicates redelivered ingestion messages.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
)

// Store encapsulates idempotency operations against DynamoDB.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	ttlWindow time.Duration // how long a key is remembered
	nowFunc   func() time.Time
}

// NewStore returns a configured Store.
func NewStore(client aws.DynamoDBAPI, tableName string, ttlWindow time.Duration) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

// CreateIfNotExists creates an IN_PROGRESS record for key if none exists.
// Returns (true, nil) if created, (false, nil) if the key is already known.
func (s *Store) CreateIfNotExists(ctx context.Context, key, entityRef string) (bool, error) {
	now := s.nowFunc()
	rec := IdempotencyRecord{
		IdempotencyKey: key,
		Status:         StatusInProgress,
		EntityRef:      entityRef,
		Attempts:       1,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(s.ttlWindow).Unix(),
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return false, fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           sdkaws.String(s.tableName),
		Item:                item,
		ConditionExpression: sdkaws.String("attribute_not_exists(idempotency_key)"),
	})
	if err != nil {
		var sc smithy.APIError
		if errors.As(err, &sc) && sc.ErrorCode() == "ConditionalCheckFailedException" {
			return false, nil
		}
		return false, fmt.Errorf("put item: %w", err)
	}

	return true, nil
}

// Get retrieves an idempotency record by key. If not found, returns (nil, nil).
func (s *Store) Get(ctx context.Context, key string) (*IdempotencyRecord, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: sdkaws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"idempotency_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var rec IdempotencyRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &rec, nil
}

// Retry moves a known key back to IN_PROGRESS and records another attempt.
func (s *Store) Retry(ctx context.Context, key string, attempt int) error {
	return s.update(ctx, key, "retry", map[string]types.AttributeValue{
		"#s":       &types.AttributeValueMemberS{Value: StatusInProgress},
		"attempts": &types.AttributeValueMemberN{Value: strconv.Itoa(attempt)},
	})
}

// MarkDone sets status to DONE.
func (s *Store) MarkDone(ctx context.Context, key string) error {
	return s.update(ctx, key, "mark done", map[string]types.AttributeValue{
		"#s": &types.AttributeValueMemberS{Value: StatusDone},
	})
}

// MarkFailed sets status to FAILED and stores a note.
func (s *Store) MarkFailed(ctx context.Context, key, note string) error {
	return s.update(ctx, key, "mark failed", map[string]types.AttributeValue{
		"#s":   &types.AttributeValueMemberS{Value: StatusFailed},
		"note": &types.AttributeValueMemberS{Value: note},
	})
}

// update SETs each attribute plus updated_at. A "#s" key targets the reserved word status.
func (s *Store) update(ctx context.Context, key, op string, set map[string]types.AttributeValue) error {
	set["updated_at"] = &types.AttributeValueMemberS{Value: s.nowFunc().Format(time.RFC3339Nano)}

	expr := "SET "
	values := map[string]types.AttributeValue{}
	names := map[string]string{}
	i := 0
	for _, attr := range sortedKeys(set) {
		if i > 0 {
			expr += ", "
		}
		placeholder := fmt.Sprintf(":u%d", i)
		values[placeholder] = set[attr]
		if attr == "#s" {
			names["#s"] = "status"
		}
		expr += attr + " = " + placeholder
		i++
	}

	input := &dyn.UpdateItemInput{
		TableName: sdkaws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"idempotency_key": &types.AttributeValueMemberS{Value: key},
		},
		UpdateExpression:          sdkaws.String(expr),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueUpdatedNew,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}
	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("update item (%s): %w", op, err)
	}
	return nil
}

func sortedKeys(m map[string]types.AttributeValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
