// Package entities implements the lifecycle of each platform entity type -
// user, charity, campaign, post, donation, update - over the store gateway.
//
// Every create validates its fields, allocates an identifier, and writes the
// document once. Every mutation on an existing entity checks the entity
// type's ownership rule before touching the store; reference lists are only
// ever mutated through the store's atomic append. Read-time composition
// (joining a post with its charity, campaign, and user) lives in the
// formatter, which tolerates missing or erased join targets.
package entities
