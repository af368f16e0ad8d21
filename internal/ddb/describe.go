package ddb

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// IndexInfo describes one global secondary index.
type IndexInfo struct {
	Name      string
	KeySchema string
	Status    string
}

// SampleSize is how many items Describe reads for TableInfo.Sample.
const SampleSize = 3

// TableInfo is a summary of a table's layout, as reported by DescribeTable.
// ItemCount is refreshed by DynamoDB roughly every six hours.
type TableInfo struct {
	Name       string
	Status     string
	KeySchema  string
	Attributes string // declared key attributes and their types
	ItemCount  int64
	Indexes    []IndexInfo
	Sample     []map[string]any
}

// Describe returns the table's key schema, attribute definitions, indexes, approximate
// item count and the first SampleSize items of a scan.
func (t *Table) Describe(ctx context.Context) (TableInfo, error) {
	out, err := t.client.DescribeTable(ctx, &dyn.DescribeTableInput{TableName: sdkaws.String(t.name)})
	if err != nil {
		return TableInfo{}, wrap("describe table", t.name, err)
	}
	if out.Table == nil {
		return TableInfo{}, fmt.Errorf("describe table %s: empty description", t.name)
	}
	d := out.Table
	info := TableInfo{
		Name:       sdkaws.ToString(d.TableName),
		Status:     string(d.TableStatus),
		KeySchema:  formatKeySchema(d.KeySchema),
		Attributes: formatAttributes(d.AttributeDefinitions),
		ItemCount:  sdkaws.ToInt64(d.ItemCount),
		Indexes:    []IndexInfo{},
		Sample:     []map[string]any{},
	}
	for _, gsi := range d.GlobalSecondaryIndexes {
		info.Indexes = append(info.Indexes, IndexInfo{
			Name:      sdkaws.ToString(gsi.IndexName),
			KeySchema: formatKeySchema(gsi.KeySchema),
			Status:    string(gsi.IndexStatus),
		})
	}

	scan, err := t.client.Scan(ctx, &dyn.ScanInput{
		TableName: sdkaws.String(t.name),
		Limit:     sdkaws.Int32(SampleSize),
	})
	if err != nil {
		return TableInfo{}, wrap("sample scan", t.name, err)
	}
	for _, rec := range scan.Items {
		var m map[string]any
		if err := attributevalue.UnmarshalMap(rec, &m); err != nil {
			return TableInfo{}, fmt.Errorf("sample scan %s: %w", t.name, err)
		}
		info.Sample = append(info.Sample, m)
	}
	return info, nil
}

// Print writes a human-readable report of info to w.
func (info TableInfo) Print(w io.Writer) {
	fmt.Fprintf(w, "table %s (%s)\n", info.Name, info.Status)
	fmt.Fprintf(w, "  key:        %s\n", info.KeySchema)
	fmt.Fprintf(w, "  attributes: %s\n", info.Attributes)
	fmt.Fprintf(w, "  items:      %d\n", info.ItemCount)
	if len(info.Indexes) == 0 {
		fmt.Fprintln(w, "  no global secondary indexes")
	}
	for _, idx := range info.Indexes {
		fmt.Fprintf(w, "  index %s: %s (%s)\n", idx.Name, idx.KeySchema, idx.Status)
	}
	if len(info.Sample) == 0 {
		fmt.Fprintln(w, "  no items")
		return
	}
	for i, item := range info.Sample {
		fmt.Fprintf(w, "  item %d:\n", i+1)
		keys := make([]string, 0, len(item))
		for k := range item {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "    %s: %v\n", k, item[k])
		}
	}
}

func formatKeySchema(ks []types.KeySchemaElement) string {
	parts := make([]string, 0, len(ks))
	for _, k := range ks {
		parts = append(parts, fmt.Sprintf("%s %s", sdkaws.ToString(k.AttributeName), k.KeyType))
	}
	return strings.Join(parts, ", ")
}

func formatAttributes(defs []types.AttributeDefinition) string {
	parts := make([]string, 0, len(defs))
	for _, d := range defs {
		parts = append(parts, fmt.Sprintf("%s %s", sdkaws.ToString(d.AttributeName), d.AttributeType))
	}
	return strings.Join(parts, ", ")
}
