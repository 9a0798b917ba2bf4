package entities

import "github.com/openalms/openalms/validate"

// Listing page sizes are bounded.
const (
	MinPageSize = 1
	MaxPageSize = 20
)

// ListParams are the pagination and ordering parameters the routing layer's
// listing routes accept. The routes themselves live outside this core; the
// parameter rules live here so every route validates them identically.
// ObjectType narrows a feed listing to posts or updates; empty means both.
type ListParams struct {
	Page       int
	PageSize   int
	Sort       string
	ObjectType string
}

// Validate checks the parameters, first fault wins.
func (p ListParams) Validate() error {
	return validate.First(
		validate.Field("page", validate.Positive(p.Page)),
		validate.Field("pageSize", validate.IntBetween(p.PageSize, MinPageSize, MaxPageSize)),
		validate.Field("sort", validate.SortDirection(p.Sort)),
		validate.Field("objectType", validate.Optional(p.ObjectType, func(v string) string {
			return validate.OneOf(v, ObjectTypes)
		})),
	)
}
