package config

const (
	// MaxFolderNameLength matches the server's VARCHAR(255) columns.
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for document file names.
	MaxFileNameLength = 255

	// DefaultPageSize is the page size used for the paginated document
	// listing when the caller does not specify one.
	DefaultPageSize = 50
)
