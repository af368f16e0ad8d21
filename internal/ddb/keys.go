// Package ddb is the DynamoDB access layer shared by the order and appointment stores:
// point lookups, prefix scans, index queries and record decoding.
package ddb

import "fmt"

// Primary key attributes.
const (
	AttrPK = "PK"
	AttrSK = "SK"
)

// Entity types used as key prefixes.
const (
	EntityOrder       = "ORDER"
	EntityAppointment = "APPOINTMENT"
)

// Key is the partition/sort key pair of a storage record.
type Key struct {
	PK string
	SK string
}

// KeyPrefix returns the namespace prefix shared by every key of an entity type.
func KeyPrefix(entity string) string {
	return entity + "#"
}

// EntityKey derives the key pair for an entity. Both parts are {TYPE}#{id}; callers
// never choose keys independently.
func EntityKey(entity, id string) Key {
	k := fmt.Sprintf("%s%s", KeyPrefix(entity), id)
	return Key{PK: k, SK: k}
}
