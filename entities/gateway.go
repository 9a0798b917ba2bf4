package entities

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/openalms/openalms/store"
)

// Gateway is the slice of the store the entity services depend on.
// *store.Store satisfies it; tests substitute an in-memory fake.
type Gateway interface {
	Allocate(ctx context.Context, col store.Collection) (string, error)
	Insert(ctx context.Context, col store.Collection, id string, fields store.Fields) (store.Doc, error)
	Update(ctx context.Context, col store.Collection, id string, fields store.Fields) (store.Doc, error)
	Append(ctx context.Context, col store.Collection, id, listField, childID string) (store.Doc, error)
	Get(ctx context.Context, col store.Collection, id string) (store.Doc, error)
	FindByIndex(ctx context.Context, col store.Collection, index, attr, value string) (store.Doc, error)
}

var _ Gateway = (*store.Store)(nil)

// decode unmarshals a raw document into an entity value.
func decode[T any](doc store.Doc) (*T, error) {
	var out T
	if err := attributevalue.UnmarshalMap(doc, &out); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &out, nil
}
