package store

import (
	"context"

	"github.com/rcliao/vidrec/internal/model"
)

// Export bundles the durable catalog and profile state for backup.
type Export struct {
	Videos   []model.Video       `json:"videos"`
	Profiles []model.UserProfile `json:"profiles"`
}

// ExportAll returns all videos and user profiles.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Export, error) {
	videos, err := s.Videos(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := s.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	return &Export{Videos: videos, Profiles: profiles}, nil
}
