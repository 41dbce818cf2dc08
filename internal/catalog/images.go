package catalog

import (
	"fmt"
	"os"
	"strings"

	"chatshop/internal/domain"
)

// FileImages loads product images from the local filesystem. Remote
// references (http/https URLs) are passed through for the gateway to fetch.
type FileImages struct {
	// MaxBytes caps the file size; zero means 10 MiB.
	MaxBytes int64
}

// Load returns the image bytes for ref, or nil bytes for a remote reference.
func (f FileImages) Load(ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: no image configured", domain.ErrImageUnavailable)
	}
	if IsRemote(ref) {
		return nil, nil
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	info, err := os.Stat(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageUnavailable, err)
	}
	if info.IsDir() || info.Size() > limit {
		return nil, fmt.Errorf("%w: %s is not a usable image file", domain.ErrImageUnavailable, ref)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageUnavailable, err)
	}
	return data, nil
}

func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
