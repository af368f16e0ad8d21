package ddb

import (
	"context"
	"errors"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
)

// Record is a raw item as returned by DynamoDB.
type Record = map[string]types.AttributeValue

// Prefix is a begins_with predicate on a string attribute.
type Prefix struct {
	Attr  string
	Value string
}

// KeyCondition selects items of a secondary index: equality on the partition attribute
// and, optionally, a prefix on the sort attribute.
type KeyCondition struct {
	Attr       string
	Value      string
	SortPrefix *Prefix
}

// Table performs reads against a single DynamoDB table.
type Table struct {
	client aws.DynamoDBAPI
	name   string
}

// NewTable binds a client to a table name.
func NewTable(client aws.DynamoDBAPI, name string) *Table {
	return &Table{client: client, name: name}
}

// GetByKey fetches one record by its exact key. Returns (nil, nil) if not found.
func (t *Table) GetByKey(ctx context.Context, key Key) (Record, error) {
	out, err := t.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: sdkaws.String(t.name),
		Key: map[string]types.AttributeValue{
			AttrPK: &types.AttributeValueMemberS{Value: key.PK},
			AttrSK: &types.AttributeValueMemberS{Value: key.SK},
		},
	})
	if err != nil {
		return nil, wrap("get item", t.name, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}

// ScanWithPrefix scans the whole table and keeps records whose PK begins with keyPrefix
// and that match every extra prefix. This is not indexed: cost grows with table size.
func (t *Table) ScanWithPrefix(ctx context.Context, keyPrefix string, extra ...Prefix) ([]Record, error) {
	expr := newExpression()
	filter := expr.beginsWith(AttrPK, keyPrefix)
	for _, p := range extra {
		filter += " AND " + expr.beginsWith(p.Attr, p.Value)
	}

	p := dyn.NewScanPaginator(t.client, &dyn.ScanInput{
		TableName:                 sdkaws.String(t.name),
		FilterExpression:          sdkaws.String(filter),
		ExpressionAttributeNames:  expr.names,
		ExpressionAttributeValues: expr.values,
	})

	records := []Record{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, wrap("scan", t.name, err)
		}
		records = append(records, page.Items...)
	}
	return records, nil
}

// QueryIndex reads the records of a secondary index matching cond.
func (t *Table) QueryIndex(ctx context.Context, index string, cond KeyCondition) ([]Record, error) {
	expr := newExpression()
	keyCond := expr.equals(cond.Attr, cond.Value)
	if cond.SortPrefix != nil {
		keyCond += " AND " + expr.beginsWith(cond.SortPrefix.Attr, cond.SortPrefix.Value)
	}

	p := dyn.NewQueryPaginator(t.client, &dyn.QueryInput{
		TableName:                 sdkaws.String(t.name),
		IndexName:                 sdkaws.String(index),
		KeyConditionExpression:    sdkaws.String(keyCond),
		ExpressionAttributeNames:  expr.names,
		ExpressionAttributeValues: expr.values,
	})

	records := []Record{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, wrap("query "+index, t.name, err)
		}
		records = append(records, page.Items...)
	}
	return records, nil
}

// Put writes a record, replacing any item with the same key.
func (t *Table) Put(ctx context.Context, item Record) error {
	_, err := t.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: sdkaws.String(t.name),
		Item:      item,
	})
	if err != nil {
		return wrap("put item", t.name, err)
	}
	return nil
}

// wrap annotates store errors with the AWS error code when there is one.
func wrap(op, table string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s %s: %s: %w", op, table, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}

// expression accumulates placeholder names and values. Attribute names always go
// through placeholders since "date" and "status" are reserved words.
type expression struct {
	names  map[string]string
	values map[string]types.AttributeValue
}

func newExpression() *expression {
	return &expression{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}
}

func (e *expression) bind(attr, value string) (string, string) {
	i := len(e.names)
	name, val := fmt.Sprintf("#a%d", i), fmt.Sprintf(":v%d", i)
	e.names[name] = attr
	e.values[val] = &types.AttributeValueMemberS{Value: value}
	return name, val
}

func (e *expression) beginsWith(attr, value string) string {
	name, val := e.bind(attr, value)
	return fmt.Sprintf("begins_with(%s, %s)", name, val)
}

func (e *expression) equals(attr, value string) string {
	name, val := e.bind(attr, value)
	return fmt.Sprintf("%s = %s", name, val)
}
