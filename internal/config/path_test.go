package config

import (
	"strings"
	"testing"
)

func TestStorePathDeterministic(t *testing.T) {
	a := StorePath("/tmp/base", "uploads")
	b := StorePath("/tmp/base", "uploads")
	if a != b {
		t.Fatalf("same name must map to same path: %q vs %q", a, b)
	}
	if !strings.HasSuffix(a, "uploads.queue") {
		t.Fatalf("unexpected path %q", a)
	}
}

func TestStorePathSanitizesName(t *testing.T) {
	p := StorePath("/tmp/base", "api queue/v2")
	if strings.ContainsAny(p[len("/tmp/base/"):], " /") {
		t.Fatalf("name not sanitized: %q", p)
	}
	if StorePath("/tmp/base", "api queue/v2") != p {
		t.Fatalf("sanitized mapping must stay deterministic")
	}
}

func TestStorePathDistinctNames(t *testing.T) {
	if StorePath("/b", "q1") == StorePath("/b", "q2") {
		t.Fatalf("distinct names must map to distinct stores")
	}
}

func TestDefaultCacheDirNonEmpty(t *testing.T) {
	if DefaultCacheDir() == "" {
		t.Fatalf("cache dir must never be empty")
	}
}
