package database

// Statement is a parameterized SQL template and its ordered arguments.
// Values are never interpolated into Query.
type Statement struct {
	Query string
	Args  []any
}
