package ports

// SchemaReader reports the size of a schema file so callers can tell
// missing, empty and populated files apart.
type SchemaReader interface {
	SchemaSize(path string) (int64, error)
}
