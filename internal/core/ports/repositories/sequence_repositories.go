package repositories

import "context"

// SequenceRepositoryFacade hands out journal reference numbers from an
// organization-and-period scoped atomic counter. Increments are serialized by
// the database (upsert with RETURNING), never computed client-side.
type SequenceRepositoryFacade interface {
	NextSequence(ctx context.Context, orgID, periodID string) (int64, error)
}
