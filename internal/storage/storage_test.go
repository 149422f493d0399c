package storage

import (
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("documents", "abc123", "diet", ".pdf")

	if !strings.HasPrefix(key, "documents/abc123/") {
		t.Errorf("key %q missing category/owner prefix", key)
	}
	if !strings.HasSuffix(key, "_diet.pdf") {
		t.Errorf("key %q missing field and extension suffix", key)
	}

	// Timestamped names keep repeated uploads from clobbering history.
	if other := ObjectKey("documents", "abc123", "diet", ".pdf"); len(other) != len(key) && other == key {
		t.Error("two keys for the same inputs collided")
	}
}

func TestObjectKeyWithoutExtension(t *testing.T) {
	key := ObjectKey("videos", "abc123", "video", "")
	if !strings.HasSuffix(key, "_video") {
		t.Errorf("key %q should end with the bare field name", key)
	}
}
