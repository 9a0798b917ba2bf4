package store

// Collection describes one entity type's storage: its table, the fields that
// must be unique across the collection, and the append-only reference lists
// it carries.
type Collection struct {
	// Type is the entity type name (e.g., "charity").
	Type string

	// Table is the DynamoDB table name for this collection.
	Table string

	// Unique lists field names that must be unique within the collection
	// (e.g., a user's email). Enforced via constraint records written in the
	// same transaction as the insert.
	Unique []string

	// Lists names the append-only reference list fields (e.g., a post's
	// donations). Mutated only through Store.Append.
	Lists []string

	// Indexes declares the GSIs FindByIndex queries. Provisioning reads
	// these to build the indexes alongside the table.
	Indexes []Index
}

// Index describes a GSI keyed on a single string attribute.
type Index struct {
	// Name is the GSI name.
	Name string

	// Attr is the string attribute the index is keyed on.
	Attr string
}

// Registry holds all known collections, declared once at startup.
type Registry struct {
	collections []Collection
	byType      map[string]Collection
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[string]Collection),
	}
}

// Register adds a collection to the registry.
func (r *Registry) Register(c Collection) {
	r.collections = append(r.collections, c)
	r.byType[c.Type] = c
}

// Lookup returns the collection for a given entity type.
func (r *Registry) Lookup(entityType string) (Collection, bool) {
	c, ok := r.byType[entityType]
	return c, ok
}

// All returns every registered collection.
func (r *Registry) All() []Collection {
	return r.collections
}
