package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// runNamespace scopes name-based run identifiers.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("hypotest/run"))

// RunID identifies one analysis run.
type RunID string

func (id RunID) String() string { return string(id) }

// IsEmpty checks if the run ID is empty
func (id RunID) IsEmpty() bool { return id == "" }

// NewRunID derives a stable run identifier from an input fingerprint.
// Identical inputs always map to the same run ID.
func NewRunID(fingerprint Hash) RunID {
	return RunID(uuid.NewSHA1(runNamespace, []byte(fingerprint)).String())
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid run ID %q: %w", s, err)
	}
	return RunID(s), nil
}
