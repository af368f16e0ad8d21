package ddb

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	validatorv10 "github.com/go-playground/validator/v10"
)

// ErrMalformedRecord is returned when a stored item does not match its schema.
var ErrMalformedRecord = errors.New("malformed record")

// Decode unmarshals a record into T and validates it. Any failure is reported as
// ErrMalformedRecord so the request fails instead of passing bad data through.
func Decode[T any](rec Record, v *validatorv10.Validate) (T, error) {
	var out T
	if err := attributevalue.UnmarshalMap(rec, &out); err != nil {
		return out, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, describe(rec), err)
	}
	if err := v.Struct(out); err != nil {
		return out, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, describe(rec), err)
	}
	return out, nil
}

// DecodeAll decodes every record, stopping at the first malformed one.
func DecodeAll[T any](recs []Record, v *validatorv10.Validate) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		item, err := Decode[T](rec, v)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Encode marshals a record struct for PutItem.
func Encode(v any) (Record, error) {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return item, nil
}

// describe names a record by its partition key for error messages.
func describe(rec Record) string {
	if pk, ok := rec[AttrPK].(*types.AttributeValueMemberS); ok && pk.Value != "" {
		return pk.Value
	}
	return "record"
}
