package domain

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// EncodeOrderIDs serializes a reference list into the blob form the store
// keeps, a JSON array of identifiers.
func EncodeOrderIDs(ids []int64) string {
	if ids == nil {
		ids = []int64{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

// DecodeOrderIDs parses a stored reference list blob. An empty blob is a
// valid empty list. A blob that does not parse yields
// ErrMalformedReferenceList; duplicates are kept, one slot per occurrence.
func DecodeOrderIDs(blob string) ([]int64, error) {
	if strings.TrimSpace(blob) == "" {
		return []int64{}, nil
	}

	var ids []int64
	if err := json.Unmarshal([]byte(blob), &ids); err != nil {
		return nil, errors.Wrap(ErrMalformedReferenceList, err.Error())
	}
	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}
