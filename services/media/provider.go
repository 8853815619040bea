package media

import "context"

// UploadConfig tells a client how to upload directly to the media provider.
type UploadConfig struct {
	URL         string            `json:"url"`
	Method      string            `json:"method"`
	Fields      map[string]string `json:"fields,omitempty"`
	MaxFileSize int64             `json:"maxFileSize,omitempty"`
}

// Provider abstracts the external asset store.
type Provider interface {
	// GetUploadConfig builds a signed direct-upload form for the owner.
	GetUploadConfig(ownerID, folder string) UploadConfig
	// SignUploadParams signs an arbitrary parameter set for a client-side upload.
	SignUploadParams(params map[string]string) string
	// DeleteAsset removes the asset from the provider.
	DeleteAsset(ctx context.Context, publicID string) error
	// PublicURL builds the delivery URL for a stored asset.
	PublicURL(publicID string) string
	// Name identifies the provider in stored media records.
	Name() string
	// UploadFolder is the base folder client uploads must land in.
	UploadFolder() string
	// CloudName identifies the provider account, used for URL origin checks.
	CloudName() string
}
