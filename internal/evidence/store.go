package evidence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists a processed evidence blob and returns a durable reference
// for it. The production deployment is expected to back this with object
// storage; DiskStore keeps files on the local volume.
type Store interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// DiskStore writes evidence files under a local directory and returns URLs
// rooted at baseURL, which the server exposes as a static route.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{dir: dir, baseURL: baseURL}
}

func (s *DiskStore) Put(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write evidence file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
