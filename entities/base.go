package entities

// Base carries the fields shared by every entity document. It is embedded by
// value in each entity type.
type Base struct {
	// ID is the opaque unique identifier, immutable after creation.
	ID string `dynamodbav:"id" json:"id"`

	// DateCreated is set exactly once, at creation.
	DateCreated string `dynamodbav:"dateCreated" json:"dateCreated"`

	// LastModified is refreshed on every successful mutation.
	LastModified string `dynamodbav:"lastModified" json:"lastModified"`

	// Erased is the logical-deletion marker. Documents are never physically
	// removed; read paths filter on this flag.
	Erased bool `dynamodbav:"erased" json:"erased"`
}
