package backend

// Provider is a cloud storage destination for uploaded images.
type Provider string

const (
	ProviderCloudinary Provider = "cloudinary"
	ProviderR2         Provider = "r2"
)

// Providers returns all supported providers. The first entry is the
// default choice offered after processing.
func Providers() []Provider {
	return []Provider{ProviderCloudinary, ProviderR2}
}

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	return p == ProviderCloudinary || p == ProviderR2
}

// Label returns the user-facing name of the provider.
func (p Provider) Label() string {
	switch p {
	case ProviderCloudinary:
		return "Cloudinary"
	case ProviderR2:
		return "Cloudflare R2"
	default:
		return string(p)
	}
}

// ProcessedImage is the daemon's response to a process request: a
// processed-but-not-yet-uploaded image held in the daemon's cache under
// TempID until it is uploaded or the daemon restarts.
type ProcessedImage struct {
	TempID        string `json:"temp_id"`
	PreviewBase64 string `json:"preview_base64"`
	SizeInfo      string `json:"size_info"`
	OriginalName  string `json:"original_name"`
}

// UploadResult holds the public URL of a completed upload.
type UploadResult struct {
	URL string `json:"url"`
}

// HistoryItem is one past upload, as persisted by the daemon.
type HistoryItem struct {
	ID              string   `json:"id"`
	Provider        Provider `json:"provider"`
	OriginalName    string   `json:"original_name"`
	URL             string   `json:"url"`
	CreatedAt       int64    `json:"created_at"` // unix seconds
	ThumbnailBase64 string   `json:"thumbnail_base64,omitempty"`
}

// Config is the daemon's configuration record. The client edits it as an
// opaque passthrough; credentials never live in the client's own config.
type Config struct {
	CloudinaryCloudName string `json:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `json:"cloudinary_api_key"`
	CloudinaryAPISecret string `json:"cloudinary_api_secret"`
	R2AccessKeyID       string `json:"r2_access_key_id"`
	R2SecretAccessKey   string `json:"r2_secret_access_key"`
	R2BucketName        string `json:"r2_bucket_name"`
	R2Endpoint          string `json:"r2_endpoint"`
	R2PublicDomain      string `json:"r2_public_domain"`
	SettingsMaxWidth    int    `json:"settings_max_width"`
	SettingsAutoWebP    bool   `json:"settings_auto_webp"`
}
