package sqlite

import (
	"context"
	"fmt"
	"math/rand"

	"stockyard/internal/domain"
)

const (
	// idSpace is the size of the shared numeric identifier namespace.
	idSpace = 100_000_000

	// maxAllocateAttempts bounds the retry loop. With a healthy store
	// the expected attempt count is near 1; hitting the bound means the
	// namespace is effectively exhausted.
	maxAllocateAttempts = 10_000
)

// AllocateID reserves and returns a new identifier from the shared
// 8-digit namespace. The reservation is a single INSERT against the
// primary key, so two concurrent callers can never both succeed with
// the same candidate; collisions retry with a fresh candidate. Issued
// identifiers are never reclaimed, even when the owning entity is
// deleted.
func (s *Store) AllocateID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		candidate := fmt.Sprintf("%08d", rand.Intn(idSpace-1)+1)
		_, err := s.db.ExecContext(ctx, `INSERT INTO global_ids (id) VALUES (?)`, candidate)
		if err == nil {
			return candidate, nil
		}
		if isUniqueViolation(err) {
			continue
		}
		return "", fmt.Errorf("allocate id: %w", err)
	}
	return "", domain.ErrIDSpaceExhausted
}
