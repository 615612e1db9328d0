package pointer

// To returns a pointer to v. Useful for literals in struct fields.
func To[T any](v T) *T { return &v }
