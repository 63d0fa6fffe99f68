package filestorage

// FileInfo describes a stored document
type FileInfo struct {
	Name     string // File name inside its directory
	Path     string // Full path on disk
	FileSize int64  // Size in bytes
}

// FileStorage defines the document storage operations
type FileStorage interface {
	// SaveJSON encodes v and stores it as subPath/name, replacing any previous version
	SaveJSON(subPath, name string, v interface{}) (*FileInfo, error)

	// ReadJSON decodes the document subPath/name into v
	ReadJSON(subPath, name string, v interface{}) error

	// Latest returns the most recently written document in subPath
	Latest(subPath string) (*FileInfo, error)

	// DeleteFile removes a document; a missing one is not an error
	DeleteFile(subPath, name string) error
}
