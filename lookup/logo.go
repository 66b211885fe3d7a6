package lookup

import (
	"context"
	"fmt"
	"strings"
)

// LogoSearchResult is the outcome of a discovery attempt. "Not found" is a
// successful result with Found false, never an error: it must not trigger a
// retry or abort anything.
type LogoSearchResult struct {
	Found  bool   `json:"found"`
	URL    string `json:"url,omitempty"`
	Format string `json:"format,omitempty"`
}

// LogoFile is a logo the user uploads instead of relying on discovery.
type LogoFile struct {
	Name        string
	ContentType string
	SizeBytes   int64
	Data        []byte
}

// LogoUploadResult is the stored location of an uploaded logo.
type LogoUploadResult struct {
	URL string `json:"url"`
}

// maxLogoSizeBytes caps uploads at 2 MiB.
const maxLogoSizeBytes = 2 << 20

var allowedLogoTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/svg+xml": true,
	"image/webp":    true,
}

// LogoProvider is the logo discovery and upload capability.
type LogoProvider interface {
	// Discover tries to find a logo for a company website.
	Discover(ctx context.Context, websiteURL string) (*LogoSearchResult, error)

	// Upload stores a user-provided logo file.
	Upload(ctx context.Context, file LogoFile) (*LogoUploadResult, error)

	// ValidateFile checks an upload candidate before any network work.
	ValidateFile(file LogoFile) error
}

// ValidateLogoFile is the shared upload gate used by every LogoProvider
// implementation: content type and size checks only, no decoding.
func ValidateLogoFile(file LogoFile) error {
	if strings.TrimSpace(file.Name) == "" {
		return fmt.Errorf("logo file name is required")
	}
	if !allowedLogoTypes[file.ContentType] {
		return fmt.Errorf("unsupported logo type %q: must be PNG, JPEG, SVG or WebP", file.ContentType)
	}
	if file.SizeBytes <= 0 {
		return fmt.Errorf("logo file is empty")
	}
	if file.SizeBytes > maxLogoSizeBytes {
		return fmt.Errorf("logo file exceeds the %d byte limit", maxLogoSizeBytes)
	}
	return nil
}
