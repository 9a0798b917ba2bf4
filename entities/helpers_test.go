package entities_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/openalms/openalms/store"
)

// fakeGateway is an in-memory Gateway with the same semantics the real
// store provides: insert-once ids, unique fields, sparse updates that
// refresh lastModified, atomic list appends, and erased-filtered reads.
type fakeGateway struct {
	mu     sync.Mutex
	tables map[string]map[string]store.Doc
	seq    int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{tables: make(map[string]map[string]store.Doc)}
}

func (f *fakeGateway) table(name string) map[string]store.Doc {
	t, ok := f.tables[name]
	if !ok {
		t = make(map[string]store.Doc)
		f.tables[name] = t
	}
	return t
}

func (f *fakeGateway) Allocate(_ context.Context, col store.Collection) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("%s-%d", col.Type, f.seq), nil
}

func (f *fakeGateway) Insert(_ context.Context, col store.Collection, id string, fields store.Fields) (store.Doc, error) {
	item, err := attributevalue.MarshalMap(map[string]any(fields))
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	t := f.table(col.Table)
	if _, exists := t[id]; exists {
		return nil, store.ErrIDConflict
	}
	for _, field := range col.Unique {
		want, ok := fields[field].(string)
		if !ok || want == "" {
			continue
		}
		for _, doc := range t {
			if v, ok := doc[field].(*types.AttributeValueMemberS); ok && v.Value == want {
				return nil, store.ErrDuplicateValue
			}
		}
	}

	now := store.Timestamp(time.Now())
	item["id"] = &types.AttributeValueMemberS{Value: id}
	item["dateCreated"] = &types.AttributeValueMemberS{Value: now}
	item["lastModified"] = &types.AttributeValueMemberS{Value: now}
	item["erased"] = &types.AttributeValueMemberBOOL{Value: false}
	t[id] = item
	return cloneDoc(item), nil
}

func (f *fakeGateway) Update(_ context.Context, col store.Collection, id string, fields store.Fields) (store.Doc, error) {
	item, err := attributevalue.MarshalMap(map[string]any(fields))
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, exists := f.table(col.Table)[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	for k, v := range item {
		if k == "id" || k == "dateCreated" || k == "lastModified" || k == "erased" {
			continue
		}
		doc[k] = v
	}
	doc["lastModified"] = &types.AttributeValueMemberS{Value: store.Timestamp(time.Now())}
	return cloneDoc(doc), nil
}

func (f *fakeGateway) Append(_ context.Context, col store.Collection, id, listField, childID string) (store.Doc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, exists := f.table(col.Table)[id]
	if !exists {
		return nil, store.ErrNotFound
	}

	var list []types.AttributeValue
	if existing, ok := doc[listField].(*types.AttributeValueMemberL); ok {
		list = existing.Value
	}
	list = append(list, &types.AttributeValueMemberS{Value: childID})
	doc[listField] = &types.AttributeValueMemberL{Value: list}
	doc["lastModified"] = &types.AttributeValueMemberS{Value: store.Timestamp(time.Now())}
	return cloneDoc(doc), nil
}

func (f *fakeGateway) Get(_ context.Context, col store.Collection, id string) (store.Doc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, exists := f.table(col.Table)[id]
	if !exists || store.IsErased(doc) {
		return nil, store.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (f *fakeGateway) FindByIndex(_ context.Context, col store.Collection, _, attr, value string) (store.Doc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, doc := range f.table(col.Table) {
		if store.IsErased(doc) {
			continue
		}
		if v, ok := doc[attr].(*types.AttributeValueMemberS); ok && v.Value == value {
			return cloneDoc(doc), nil
		}
	}
	return nil, store.ErrNotFound
}

// erase flips the logical-deletion marker on a stored document.
func (f *fakeGateway) erase(col store.Collection, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, exists := f.table(col.Table)[id]; exists {
		doc["erased"] = &types.AttributeValueMemberBOOL{Value: true}
	}
}

// snapshot returns a copy of the stored document for unchanged-state checks.
func (f *fakeGateway) snapshot(col store.Collection, id string) store.Doc {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, exists := f.table(col.Table)[id]; exists {
		return cloneDoc(doc)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func cloneDoc(doc store.Doc) store.Doc {
	out := make(store.Doc, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
