package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"forotrix/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryProvider implements Provider on top of Cloudinary's upload API.
type CloudinaryProvider struct {
	cld          *cloudinary.Cloudinary
	cloudName    string
	apiKey       string
	apiSecret    string
	uploadFolder string
	maxFileSize  int64
}

// NewCloudinaryProvider builds the provider from the loaded app config.
func NewCloudinaryProvider() (*CloudinaryProvider, error) {
	cfg := config.AppConfig
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryProvider{
		cld:          cld,
		cloudName:    cfg.CloudinaryCloudName,
		apiKey:       cfg.CloudinaryAPIKey,
		apiSecret:    cfg.CloudinaryAPISecret,
		uploadFolder: cfg.CloudinaryUploadFolder,
		maxFileSize:  cfg.CloudinaryMaxFileSize,
	}, nil
}

func (p *CloudinaryProvider) Name() string         { return "cloudinary" }
func (p *CloudinaryProvider) UploadFolder() string { return p.uploadFolder }
func (p *CloudinaryProvider) CloudName() string    { return p.cloudName }

// GetUploadConfig returns a signed POST form for a direct browser upload into
// the owner's folder.
func (p *CloudinaryProvider) GetUploadConfig(ownerID, folder string) UploadConfig {
	if folder == "" {
		folder = fmt.Sprintf("%s/%s", p.uploadFolder, ownerID)
	}
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"folder":    folder,
	}
	signature := p.SignUploadParams(params)

	fields := make(map[string]string, len(params)+2)
	for k, v := range params {
		fields[k] = v
	}
	fields["signature"] = signature
	fields["api_key"] = p.apiKey

	return UploadConfig{
		URL:         fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", p.cloudName),
		Method:      "POST",
		Fields:      fields,
		MaxFileSize: p.maxFileSize,
	}
}

// SignUploadParams computes Cloudinary's upload signature: the parameters
// sorted by key, serialized as a query string, concatenated with the API
// secret and hashed with SHA-1.
func (p *CloudinaryProvider) SignUploadParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}
	toSign := strings.Join(pairs, "&") + p.apiSecret

	h := sha1.New()
	h.Write([]byte(toSign))
	return hex.EncodeToString(h.Sum(nil))
}

// DeleteAsset destroys the asset and invalidates cached CDN copies.
func (p *CloudinaryProvider) DeleteAsset(ctx context.Context, publicID string) error {
	invalidate := true
	_, err := p.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, Invalidate: &invalidate})
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", publicID, err)
	}
	return nil
}

// PublicURL builds the delivery URL for an asset.
func (p *CloudinaryProvider) PublicURL(publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", p.cloudName, publicID)
}
