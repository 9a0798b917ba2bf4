package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// IsErased checks whether a document carries the logical-deletion marker.
// Documents are never physically removed; reads filter on this flag instead.
func IsErased(item map[string]types.AttributeValue) bool {
	attr, exists := item["erased"]
	if !exists {
		return false // No marker = active
	}
	flag, ok := attr.(*types.AttributeValueMemberBOOL)
	if !ok {
		return false
	}
	return flag.Value
}

// NotErasedFilterExpr returns the filter expression that excludes erased
// documents. Use this when building custom queries.
func NotErasedFilterExpr() string {
	return "attribute_not_exists(#erased) OR #erased = :active"
}

// NotErasedFilterNames returns expression attribute names for the erased
// filter. Use with NotErasedFilterExpr.
func NotErasedFilterNames() map[string]string {
	return map[string]string{"#erased": "erased"}
}

// NotErasedFilterValues returns expression attribute values for the erased
// filter. Use with NotErasedFilterExpr.
func NotErasedFilterValues() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		":active": &types.AttributeValueMemberBOOL{Value: false},
	}
}
