// Package ddbtest provides an in-memory stand-in for the DynamoDB client.
//
// It understands the small expression grammar this service emits: clauses joined by
// AND, each one of `a = :v`, `begins_with(a, :v)`, `attribute_exists(a)` or
// `attribute_not_exists(a)`, with optional #name placeholders. Update expressions
// support `SET a = :v, b = :w`. NOTE: intentionally minimal, not a DynamoDB emulator.
package ddbtest

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type item = map[string]types.AttributeValue

type index struct {
	pk, sk string
}

type table struct {
	pk, sk  string
	order   []string // insertion order of item keys
	items   map[string]item
	indexes map[string]index
}

// Fake implements the service's DynamoDBAPI interface in memory.
type Fake struct {
	mu     sync.Mutex
	tables map[string]*table
	fail   map[string]error
	calls  map[string]int

	// PageSize, when positive, splits Scan and Query results into pages of at most
	// PageSize examined items, like DynamoDB's Limit.
	PageSize int
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		tables: map[string]*table{},
		fail:   map[string]error{},
		calls:  map[string]int{},
	}
}

// CreateTable registers a table with its key schema; sk may be empty.
func (f *Fake) CreateTable(name, pk, sk string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[name] = &table{pk: pk, sk: sk, items: map[string]item{}, indexes: map[string]index{}}
}

// AddIndex registers a global secondary index; sk may be empty.
func (f *Fake) AddIndex(tableName, name, pk, sk string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[tableName].indexes[name] = index{pk: pk, sk: sk}
}

// Fail makes every subsequent call of op ("Scan", "GetItem", ...) return err.
func (f *Fake) Fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

// Calls returns how many times op was invoked.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Item returns the stored item for a key, or nil.
func (f *Fake) Item(tableName, pk, sk string) map[string]types.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[tableName]
	if !ok {
		return nil
	}
	return t.items[pk+"|"+sk]
}

// Put stores an item directly, bypassing conditions.
func (f *Fake) Put(tableName string, it map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tables[tableName]
	k, err := t.key(it)
	if err != nil {
		panic(err)
	}
	t.store(k, it)
}

func (f *Fake) enter(op, tableName string) (*table, error) {
	f.calls[op]++
	if err := f.fail[op]; err != nil {
		return nil, err
	}
	t, ok := f.tables[tableName]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: sdkaws.String("table not found: " + tableName)}
	}
	return t, nil
}

func (t *table) key(it item) (string, error) {
	pk, ok := str(it[t.pk])
	if !ok {
		return "", fmt.Errorf("missing key attribute %s", t.pk)
	}
	sk := ""
	if t.sk != "" {
		if sk, ok = str(it[t.sk]); !ok {
			return "", fmt.Errorf("missing key attribute %s", t.sk)
		}
	}
	return pk + "|" + sk, nil
}

func (t *table) store(k string, it item) {
	if _, exists := t.items[k]; !exists {
		t.order = append(t.order, k)
	}
	cp := make(item, len(it))
	for a, v := range it {
		cp[a] = v
	}
	t.items[k] = cp
}

func (t *table) all() []item {
	out := make([]item, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.items[k])
	}
	return out
}

// GetItem implements DynamoDBAPI.
func (f *Fake) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.enter("GetItem", sdkaws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}
	k, err := t.key(params.Key)
	if err != nil {
		return nil, err
	}
	it, ok := t.items[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: it}, nil
}

// PutItem implements DynamoDBAPI.
func (f *Fake) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.enter("PutItem", sdkaws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}
	k, err := t.key(params.Item)
	if err != nil {
		return nil, err
	}
	if cond := sdkaws.ToString(params.ConditionExpression); cond != "" {
		ok, err := eval(cond, t.items[k], params.ExpressionAttributeNames, params.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &types.ConditionalCheckFailedException{Message: sdkaws.String("The conditional request failed")}
		}
	}
	t.store(k, params.Item)
	return &dyn.PutItemOutput{}, nil
}

// UpdateItem implements DynamoDBAPI.
func (f *Fake) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.enter("UpdateItem", sdkaws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}
	k, err := t.key(params.Key)
	if err != nil {
		return nil, err
	}
	current := t.items[k]
	if cond := sdkaws.ToString(params.ConditionExpression); cond != "" {
		ok, err := eval(cond, current, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &types.ConditionalCheckFailedException{Message: sdkaws.String("The conditional request failed")}
		}
	}

	next := item{}
	for a, v := range current {
		next[a] = v
	}
	for a, v := range params.Key {
		next[a] = v
	}
	update := strings.TrimSpace(sdkaws.ToString(params.UpdateExpression))
	if !strings.HasPrefix(update, "SET ") {
		return nil, fmt.Errorf("ddbtest: unsupported update expression %q", update)
	}
	for _, assign := range strings.Split(strings.TrimPrefix(update, "SET "), ",") {
		lhs, rhs, ok := strings.Cut(assign, "=")
		if !ok {
			return nil, fmt.Errorf("ddbtest: bad assignment %q", assign)
		}
		v, ok := params.ExpressionAttributeValues[strings.TrimSpace(rhs)]
		if !ok {
			return nil, fmt.Errorf("ddbtest: unbound value %q", rhs)
		}
		next[name(strings.TrimSpace(lhs), params.ExpressionAttributeNames)] = v
	}
	t.store(k, next)
	return &dyn.UpdateItemOutput{Attributes: next}, nil
}

// Scan implements DynamoDBAPI.
func (f *Fake) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.enter("Scan", sdkaws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}
	page, next, err := f.page(t.all(), params.ExclusiveStartKey, sdkaws.ToInt32(params.Limit))
	if err != nil {
		return nil, err
	}
	out := []item{}
	for _, it := range page {
		if cond := sdkaws.ToString(params.FilterExpression); cond != "" {
			ok, err := eval(cond, it, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out = append(out, it)
	}
	return &dyn.ScanOutput{Items: out, Count: int32(len(out)), LastEvaluatedKey: next}, nil
}

// Query implements DynamoDBAPI.
func (f *Fake) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.enter("Query", sdkaws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}
	idx := index{pk: t.pk, sk: t.sk}
	if name := sdkaws.ToString(params.IndexName); name != "" {
		var ok bool
		if idx, ok = t.indexes[name]; !ok {
			return nil, fmt.Errorf("ddbtest: unknown index %q", name)
		}
	}

	matched := []item{}
	for _, it := range t.all() {
		// sparse index: items without the key attributes are not projected
		if _, ok := it[idx.pk]; !ok {
			continue
		}
		if idx.sk != "" {
			if _, ok := it[idx.sk]; !ok {
				continue
			}
		}
		ok, err := eval(sdkaws.ToString(params.KeyConditionExpression), it, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, it)
		}
	}
	if idx.sk != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			a, _ := str(matched[i][idx.sk])
			b, _ := str(matched[j][idx.sk])
			return a < b
		})
	}

	page, next, err := f.page(matched, params.ExclusiveStartKey, sdkaws.ToInt32(params.Limit))
	if err != nil {
		return nil, err
	}
	return &dyn.QueryOutput{Items: page, Count: int32(len(page)), LastEvaluatedKey: next}, nil
}

// DescribeTable implements DynamoDBAPI.
func (f *Fake) DescribeTable(ctx context.Context, params *dyn.DescribeTableInput, optFns ...func(*dyn.Options)) (*dyn.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := sdkaws.ToString(params.TableName)
	t, err := f.enter("DescribeTable", name)
	if err != nil {
		return nil, err
	}
	desc := &types.TableDescription{
		TableName:   sdkaws.String(name),
		TableStatus: types.TableStatusActive,
		KeySchema:   keySchema(t.pk, t.sk),
		ItemCount:   sdkaws.Int64(int64(len(t.items))),
	}
	defined := map[string]bool{}
	define := func(attrs ...string) {
		for _, a := range attrs {
			if a == "" || defined[a] {
				continue
			}
			defined[a] = true
			desc.AttributeDefinitions = append(desc.AttributeDefinitions, types.AttributeDefinition{
				AttributeName: sdkaws.String(a),
				AttributeType: types.ScalarAttributeTypeS,
			})
		}
	}
	define(t.pk, t.sk)
	names := make([]string, 0, len(t.indexes))
	for n := range t.indexes {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		idx := t.indexes[n]
		define(idx.pk, idx.sk)
		desc.GlobalSecondaryIndexes = append(desc.GlobalSecondaryIndexes, types.GlobalSecondaryIndexDescription{
			IndexName:   sdkaws.String(n),
			IndexStatus: types.IndexStatusActive,
			KeySchema:   keySchema(idx.pk, idx.sk),
		})
	}
	return &dyn.DescribeTableOutput{Table: desc}, nil
}

func keySchema(pk, sk string) []types.KeySchemaElement {
	ks := []types.KeySchemaElement{{AttributeName: sdkaws.String(pk), KeyType: types.KeyTypeHash}}
	if sk != "" {
		ks = append(ks, types.KeySchemaElement{AttributeName: sdkaws.String(sk), KeyType: types.KeyTypeRange})
	}
	return ks
}

const offsetAttr = "__offset"

// page slices items according to PageSize or the request Limit, whichever is smaller;
// the continuation key carries an offset.
func (f *Fake) page(items []item, start map[string]types.AttributeValue, limit int32) ([]item, map[string]types.AttributeValue, error) {
	size := f.PageSize
	if limit > 0 && (size <= 0 || int(limit) < size) {
		size = int(limit)
	}
	from := 0
	if v, ok := start[offsetAttr].(*types.AttributeValueMemberN); ok {
		n, err := strconv.Atoi(v.Value)
		if err != nil {
			return nil, nil, err
		}
		from = n
	}
	if from > len(items) {
		from = len(items)
	}
	if size <= 0 || from+size >= len(items) {
		return items[from:], nil, nil
	}
	to := from + size
	next := map[string]types.AttributeValue{offsetAttr: &types.AttributeValueMemberN{Value: strconv.Itoa(to)}}
	return items[from:to], next, nil
}

func str(v types.AttributeValue) (string, bool) {
	switch tv := v.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value, true
	case *types.AttributeValueMemberN:
		return tv.Value, true
	}
	return "", false
}

func name(n string, names map[string]string) string {
	if strings.HasPrefix(n, "#") {
		return names[n]
	}
	return n
}

// eval evaluates an AND-joined condition against it (nil means "no item").
func eval(expr string, it item, names map[string]string, values map[string]types.AttributeValue) (bool, error) {
	for _, clause := range strings.Split(expr, " AND ") {
		clause = strings.TrimSpace(clause)
		var ok bool
		switch {
		case strings.HasPrefix(clause, "attribute_not_exists(") && strings.HasSuffix(clause, ")"):
			attr := name(strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_not_exists("), ")"), names)
			_, exists := it[attr]
			ok = !exists
		case strings.HasPrefix(clause, "attribute_exists(") && strings.HasSuffix(clause, ")"):
			attr := name(strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_exists("), ")"), names)
			_, ok = it[attr]
		case strings.HasPrefix(clause, "begins_with(") && strings.HasSuffix(clause, ")"):
			args := strings.Split(strings.TrimSuffix(strings.TrimPrefix(clause, "begins_with("), ")"), ",")
			if len(args) != 2 {
				return false, fmt.Errorf("ddbtest: bad clause %q", clause)
			}
			have, present := str(it[name(strings.TrimSpace(args[0]), names)])
			want, bound := str(values[strings.TrimSpace(args[1])])
			if !bound {
				return false, fmt.Errorf("ddbtest: unbound value in %q", clause)
			}
			ok = present && strings.HasPrefix(have, want)
		case strings.Contains(clause, "="):
			lhs, rhs, _ := strings.Cut(clause, "=")
			have, present := str(it[name(strings.TrimSpace(lhs), names)])
			want, bound := str(values[strings.TrimSpace(rhs)])
			if !bound {
				return false, fmt.Errorf("ddbtest: unbound value in %q", clause)
			}
			ok = present && have == want
		default:
			return false, fmt.Errorf("ddbtest: unsupported clause %q", clause)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
