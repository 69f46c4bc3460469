package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "http://localhost:9500")
	ctx := context.Background()

	url, err := store.Store(ctx, []byte("payload"), "image/png", "photo.png", "project-images")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:9500/uploads/project-images/") {
		t.Fatalf("unexpected url: %s", url)
	}
	if !strings.HasSuffix(url, "-photo.png") {
		t.Fatalf("original name lost from key: %s", url)
	}

	key := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(root, "project-images", key))
	if err != nil {
		t.Fatalf("read stored object: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("stored payload = %q", data)
	}

	entries, err := os.ReadDir(filepath.Join(root, "project-images"))
	if err != nil {
		t.Fatalf("read bucket dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("bucket has %d entries, want 1 (no temp leftovers)", len(entries))
	}
}

func TestFileStoreKeysNeverCollide(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")
	ctx := context.Background()

	first, err := store.Store(ctx, []byte("a"), "image/png", "same.png", "b")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	second, err := store.Store(ctx, []byte("b"), "image/png", "same.png", "b")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if first == second {
		t.Fatalf("two uploads of the same name share a URL: %s", first)
	}
}

func TestFileStoreRejectsBadBucket(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")
	ctx := context.Background()

	for _, bucket := range []string{"", "UPPER", "../escape", "a/b", "-leading"} {
		if _, err := store.Store(ctx, []byte("x"), "image/png", "f.png", bucket); err == nil {
			t.Fatalf("bucket %q accepted", bucket)
		}
	}
}

func TestFileStoreRemove(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "http://localhost:9500")
	ctx := context.Background()

	url, err := store.Store(ctx, []byte("payload"), "image/png", "photo.png", "project-images")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := store.Remove(ctx, url); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "project-images"))
	if err != nil {
		t.Fatalf("read bucket dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("object survived Remove: %v", entries)
	}

	// Removing again, or removing URLs that never mapped into the store,
	// is a no-op.
	if err := store.Remove(ctx, url); err != nil {
		t.Fatalf("repeat Remove() error = %v", err)
	}
	for _, foreign := range []string{
		"data:image/png;base64,AAAA",
		"https://elsewhere.example.com/images/x.png",
		"/uploads/project-images/../../etc/passwd",
		"/uploads/justbucket",
	} {
		if err := store.Remove(ctx, foreign); err != nil {
			t.Fatalf("Remove(%q) error = %v", foreign, err)
		}
	}
}

func TestDataURLStore(t *testing.T) {
	url, err := DataURLStore{}.Store(context.Background(), []byte{0x1, 0x2}, "image/png", "f.png", "b")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if url != "data:image/png;base64,AQI=" {
		t.Fatalf("unexpected data url: %s", url)
	}

	fallback, err := DataURLStore{}.Store(context.Background(), []byte("x"), "", "f", "b")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !strings.HasPrefix(fallback, "data:application/octet-stream;base64,") {
		t.Fatalf("missing content type fallback: %s", fallback)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"photo.png", "photo.png"},
		{"weird name (1).png", "weird-name-1-.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\pic.jpg`, "pic.jpg"},
		{"", "file"},
		{"???", "file"},
	}
	for _, tc := range cases {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
