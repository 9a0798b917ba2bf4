package store

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// --- joinStrings Tests ---

func TestJoinStrings_Empty(t *testing.T) {
	result := joinStrings([]string{}, ", ")
	if result != "" {
		t.Errorf("expected empty string for empty slice, got %q", result)
	}
}

func TestJoinStrings_Single(t *testing.T) {
	result := joinStrings([]string{"one"}, ", ")
	if result != "one" {
		t.Errorf("expected 'one', got %q", result)
	}
}

func TestJoinStrings_SetClauses(t *testing.T) {
	clauses := []string{"#attr0 = :val0", "#attr1 = :val1", "#lastModified = :lastModified"}
	result := joinStrings(clauses, ", ")
	expected := "#attr0 = :val0, #attr1 = :val1, #lastModified = :lastModified"
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

// --- buildSetClauses Tests ---

func TestBuildSetClauses_SkipsManagedFields(t *testing.T) {
	item := map[string]types.AttributeValue{
		"id":           &types.AttributeValueMemberS{Value: "doc-1"},
		"dateCreated":  &types.AttributeValueMemberS{Value: "2024-01-01T00:00:00Z"},
		"lastModified": &types.AttributeValueMemberS{Value: "2024-01-01T00:00:00Z"},
		"erased":       &types.AttributeValueMemberBOOL{Value: false},
		"caption":      &types.AttributeValueMemberS{Value: "hello"},
	}

	clauses, names, values := buildSetClauses(item)

	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d: %v", len(clauses), clauses)
	}
	if len(names) != 1 || len(values) != 1 {
		t.Errorf("expected 1 name and 1 value, got %d and %d", len(names), len(values))
	}
	for _, v := range names {
		if v != "caption" {
			t.Errorf("expected only 'caption' to survive, got %q", v)
		}
	}
}

func TestBuildSetClauses_Empty(t *testing.T) {
	clauses, names, values := buildSetClauses(map[string]types.AttributeValue{})
	if len(clauses) != 0 || len(names) != 0 || len(values) != 0 {
		t.Errorf("expected empty output, got %v %v %v", clauses, names, values)
	}
}

func TestBuildSetClauses_PlaceholdersPairUp(t *testing.T) {
	item := map[string]types.AttributeValue{
		"name": &types.AttributeValueMemberS{Value: "a"},
		"logo": &types.AttributeValueMemberS{Value: "b"},
	}

	clauses, names, values := buildSetClauses(item)

	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	// Every name placeholder must have a matching value placeholder.
	for nameKey := range names {
		valueKey := ":val" + nameKey[len("#attr"):]
		if _, ok := values[valueKey]; !ok {
			t.Errorf("name %q has no matching value %q", nameKey, valueKey)
		}
	}
}

// --- mapInsertError Tests ---

func TestMapInsertError_Nil(t *testing.T) {
	s := &Store{}
	if err := s.mapInsertError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestMapInsertError_NonTransactionError(t *testing.T) {
	s := &Store{}
	originalErr := errors.New("some other error")
	if err := s.mapInsertError(originalErr); err != originalErr {
		t.Errorf("expected original error, got %v", err)
	}
}

func TestMapInsertError_DocumentPutFailure(t *testing.T) {
	s := &Store{}
	code := "ConditionalCheckFailed"
	txErr := &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{Code: &code}, // Index 0 - document put
		},
	}

	if err := s.mapInsertError(txErr); !errors.Is(err, ErrIDConflict) {
		t.Errorf("expected ErrIDConflict, got %v", err)
	}
}

func TestMapInsertError_ConstraintFailure(t *testing.T) {
	s := &Store{}
	code := "ConditionalCheckFailed"
	txErr := &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{},            // Index 0 - document put
			{Code: &code}, // Index 1 - unique constraint
		},
	}

	if err := s.mapInsertError(txErr); !errors.Is(err, ErrDuplicateValue) {
		t.Errorf("expected ErrDuplicateValue, got %v", err)
	}
}

func TestMapInsertError_OtherCancellationCode(t *testing.T) {
	s := &Store{}
	code := "TransactionConflict"
	txErr := &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{Code: &code},
		},
	}

	err := s.mapInsertError(txErr)
	if err == nil || errors.Is(err, ErrIDConflict) || errors.Is(err, ErrDuplicateValue) {
		t.Error("expected original transaction error")
	}
}
