// Package blob stores uploaded binary payloads and hands back retrievable
// URLs. Two implementations exist: a filesystem-backed object store served
// by the daemon under /uploads/, and a data-URL fallback for deployments
// with no storage directory configured.
package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Store persists one payload and returns a URL the front end can render.
type Store interface {
	Store(ctx context.Context, data []byte, contentType, originalName, bucket string) (string, error)
}

// Remover is implemented by stores that can delete a previously returned
// URL. Deletion is best effort; callers log failures and move on.
type Remover interface {
	Remove(ctx context.Context, storedURL string) error
}

var bucketPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// FileStore writes objects under root/<bucket>/<key> and returns URLs under
// publicBaseURL/uploads/<bucket>/<key>. Keys are ULID-prefixed so two
// uploads of the same file name never collide.
type FileStore struct {
	root          string
	publicBaseURL string
}

func NewFileStore(root, publicBaseURL string) *FileStore {
	return &FileStore{root: root, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) Store(ctx context.Context, data []byte, contentType, originalName, bucket string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !bucketPattern.MatchString(bucket) {
		return "", fmt.Errorf("invalid bucket %q", bucket)
	}

	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create bucket directory %s: %w", dir, err)
	}

	key := ulid.Make().String() + "-" + sanitizeName(originalName)
	dst := filepath.Join(dir, key)

	tmp, err := os.CreateTemp(dir, key+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp object file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write temp object file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp object file: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("finalize object %s: %w", dst, err)
	}

	return s.publicBaseURL + path.Join("/uploads", bucket, key), nil
}

// Remove deletes the object a previously returned URL points at. URLs that
// do not map into this store (data URLs, foreign hosts) are ignored.
func (s *FileStore) Remove(ctx context.Context, storedURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bucket, key, ok := s.parseObjectURL(storedURL)
	if !ok {
		return nil
	}
	if err := os.Remove(filepath.Join(s.root, bucket, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove object %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *FileStore) parseObjectURL(storedURL string) (bucket, key string, ok bool) {
	raw := storedURL
	if s.publicBaseURL != "" && strings.HasPrefix(raw, s.publicBaseURL) {
		raw = strings.TrimPrefix(raw, s.publicBaseURL)
	} else if u, err := url.Parse(raw); err == nil && u.Host != "" {
		raw = u.Path
	}
	rest, found := strings.CutPrefix(raw, "/uploads/")
	if !found {
		return "", "", false
	}
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	bucket, key = parts[0], parts[1]
	if !bucketPattern.MatchString(bucket) || key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", "", false
	}
	return bucket, key, true
}

// DataURLStore embeds the payload in the returned URL itself. Responses and
// database rows grow with the payload; this is the degraded mode for
// environments without blob storage.
type DataURLStore struct{}

func (DataURLStore) Store(ctx context.Context, data []byte, contentType, _ string, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeNameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "file"
	}
	return name
}
