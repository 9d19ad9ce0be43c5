package embcache

import (
	"reflect"
	"strings"
	"testing"
)

func TestCacheKey_StableAndPrefixed(t *testing.T) {
	k1 := cacheKey("red running shoes")
	k2 := cacheKey("red running shoes")
	k3 := cacheKey("blue running shoes")

	if k1 != k2 {
		t.Error("same text must produce the same key")
	}
	if k1 == k3 {
		t.Error("different texts must produce different keys")
	}
	if !strings.HasPrefix(k1, keyPrefix) {
		t.Errorf("key missing prefix: %q", k1)
	}
}

func TestEncodeDecodeVector_RoundTrip(t *testing.T) {
	vec := []float32{0.1, -2.5, 0, 1536.25}

	got, ok := decodeVector(encodeVector(vec))
	if !ok {
		t.Fatal("decode failed")
	}
	if !reflect.DeepEqual(got, vec) {
		t.Errorf("round trip mismatch: %v != %v", got, vec)
	}
}

func TestDecodeVector_RejectsCorruptPayload(t *testing.T) {
	if _, ok := decodeVector(nil); ok {
		t.Error("empty payload must fail decoding")
	}
	if _, ok := decodeVector([]byte{1, 2, 3}); ok {
		t.Error("misaligned payload must fail decoding")
	}
}
