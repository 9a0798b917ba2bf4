package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

// maxAllocateAttempts bounds the collision-retry loop. A v4 UUID colliding
// even once is astronomically unlikely; hitting the ceiling means the
// collection is unreadable, not unlucky.
const maxAllocateAttempts = 5

// Allocate generates a unique identifier for a collection: a random UUID in
// canonical string form, confirmed unused by probing the collection. No id
// is ever returned unconfirmed. Erased documents still hold their id, so the
// probe looks at raw existence, not the erased-filtered read path.
//
// A store failure during the probe propagates unchanged. Exhausting the
// retry ceiling returns ErrAllocExhausted.
func (s *Store) Allocate(ctx context.Context, col Collection) (string, error) {
	for attempt := 1; attempt <= maxAllocateAttempts; attempt++ {
		id := uuid.NewString()

		result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(col.Table),
			Key:       idKey(id),
		})
		if err != nil {
			return "", err
		}
		if result.Item == nil {
			return id, nil
		}

		s.logger.Warn("identifier collision, retrying",
			"collection", col.Type,
			"attempt", attempt,
		)
	}
	return "", ErrAllocExhausted
}
