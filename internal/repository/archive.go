package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/quoridorlive/quoridor-backend/internal/entity"
)

const (
	archiveKey = "archive:matches"

	// maxArchived caps the list so the archive cannot grow without bound.
	maxArchived = 100
)

// ArchiveRepository stores summaries of concluded matches. Live game state
// is never persisted; this is a history of finished games only.
type ArchiveRepository interface {
	Save(ctx context.Context, summary *entity.MatchSummary) error
	Recent(ctx context.Context, limit int) ([]*entity.MatchSummary, error)
}

type dbArchive struct {
	client *redis.Client
}

func NewArchiveRepository(client *redis.Client) ArchiveRepository {
	return &dbArchive{
		client: client,
	}
}

// Save prepends the summary to the archive list and trims it to the cap.
func (that *dbArchive) Save(ctx context.Context, summary *entity.MatchSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("could not marshal summary: %w", err)
	}

	if err = that.client.LPush(ctx, archiveKey, summaryJSON).Err(); err != nil {
		return fmt.Errorf("failed to push summary: %w", err)
	}

	if err = that.client.LTrim(ctx, archiveKey, 0, maxArchived-1).Err(); err != nil {
		return fmt.Errorf("failed to trim archive: %w", err)
	}

	return nil
}

// Recent returns up to limit summaries, most recently finished first.
func (that *dbArchive) Recent(ctx context.Context, limit int) ([]*entity.MatchSummary, error) {
	if limit <= 0 || limit > maxArchived {
		limit = maxArchived
	}

	entries, err := that.client.LRange(ctx, archiveKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	summaries := make([]*entity.MatchSummary, 0, len(entries))
	for _, entry := range entries {
		var summary entity.MatchSummary
		if err = json.Unmarshal([]byte(entry), &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
		}

		summaries = append(summaries, &summary)
	}

	return summaries, nil
}
