package storage

// Config holds storage configuration
type Config struct {
	UploadDir   string // local directory holding images/
	BaseURL     string // server base URL used to build image URLs
	MaxFileSize int64  // bytes, 0 means unlimited
}
