package cache

import (
	"encoding/json"
	"fmt"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// GenerateKey computes a deterministic content hash over the ordered key
// components. Object components are canonicalized (map keys sorted
// recursively) before hashing, so semantically identical objects with
// different field order produce the same key.
func GenerateKey(components ...any) (string, error) {
	digest := xxhash.New()

	for _, c := range components {
		data, err := canonicalJSON(c)
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrCacheKeyFailed.Error())
		}
		_, _ = digest.Write(data)
		_, _ = digest.Write([]byte{0}) // Separator
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// canonicalJSON serializes v into its canonical JSON form. The round trip
// through an untyped value collapses structs and maps into the same
// representation, and encoding/json emits map keys in sorted order.
func canonicalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}
