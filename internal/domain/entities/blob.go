package entities

// BlobCategory selects the bucket and the owning profile kind
type BlobCategory string

const (
	// BlobSalesPersonProfileImage holds sales person profile images
	BlobSalesPersonProfileImage BlobCategory = "sppi"
	// BlobAdminProfileImage holds admin profile images
	BlobAdminProfileImage BlobCategory = "api"
)

// IsValid reports whether c is whitelisted
func (c BlobCategory) IsValid() bool {
	return c == BlobSalesPersonProfileImage || c == BlobAdminProfileImage
}

// Blob is stored binary content with its metadata
type Blob struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Length      int64  `json:"length"`
	Content     []byte `json:"-"`
}
