// Package validate composes per-field rules into a single deterministic
// first-fault result.
//
// Rules are plain functions evaluated eagerly against their field value; each
// returns a fault message (beginning with a space) or "" on pass. Call sites
// pair every evaluated fault with its field name and hand the ordered pairs
// to [First], which reports the first failing field as a [FieldError].
package validate

// FieldError reports the first field that failed validation. The message
// renders as the field name followed directly by the fault, e.g.
// "password must be at least 8 characters long".
type FieldError struct {
	Field string
	Fault string
}

func (e *FieldError) Error() string {
	return e.Field + e.Fault
}

// Check is one evaluated (field, fault) pair.
type Check struct {
	Field string
	Fault string
}

// Field pairs a field name with the fault its rule produced.
func Field(name, fault string) Check {
	return Check{Field: name, Fault: fault}
}

// First scans the checks in declaration order and returns a *FieldError for
// the first non-empty fault, or nil when every field passed.
func First(checks ...Check) error {
	for _, c := range checks {
		if c.Fault != "" {
			return &FieldError{Field: c.Field, Fault: c.Fault}
		}
	}
	return nil
}
