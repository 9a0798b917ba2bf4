// Package store provides the DynamoDB data-access layer for the donation
// platform: identifier allocation, document persistence, and the read
// primitives the entity services are built on.
//
// The store treats DynamoDB as a schemaless document collection. A single
// UpdateItem with a SET expression is the upsert primitive, list_append is
// the atomic array-append primitive, and conditional expressions provide the
// per-collection identifier uniqueness constraint. There are no
// cross-document transactions beyond the unique-constraint records written
// alongside an insert.
//
// # Operations
//
//   - [Store.Allocate] - collision-checked identifier allocation
//   - [Store.Insert] - create a document under a freshly allocated id
//   - [Store.Update] - sparse field update keyed by id
//   - [Store.Append] - atomic append to an append-only reference list
//   - [Store.Get] - id-keyed lookup, logical deletions filtered
//   - [Store.FindByIndex] - single-document GSI lookup
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - document doesn't exist or is erased
//   - [ErrIDConflict] - identifier already in use (allocator race loser)
//   - [ErrDuplicateValue] - unique constraint violated
//   - [ErrAllocExhausted] - allocation retry ceiling reached
//
// Anything else coming back from DynamoDB is propagated unchanged.
package store
