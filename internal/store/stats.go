package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath               string          `json:"db_path"`
	DBSizeBytes          int64           `json:"db_size_bytes"`
	Videos               int             `json:"videos"`
	UserProfiles         int             `json:"user_profiles"`
	WatchEvents          int             `json:"watch_events"`
	LikeEvents           int             `json:"like_events"`
	RecommendationEvents int             `json:"recommendation_events"`
	Categories           []CategoryStats `json:"categories,omitempty"`
	TopVideos            []TopVideo      `json:"top_videos,omitempty"`
}

// CategoryStats holds per-category catalog counts.
type CategoryStats struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TopVideo is a catalog entry ranked by view count.
type TopVideo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Views int64  `json:"views"`
	Likes int64  `json:"likes"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&st.Videos)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_profiles`).Scan(&st.UserProfiles)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM watch_history`).Scan(&st.WatchEvents)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM liked_videos`).Scan(&st.LikeEvents)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recommendation_logs`).Scan(&st.RecommendationEvents)

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(category, ''), COUNT(*) AS cnt
		FROM videos GROUP BY category ORDER BY cnt DESC, category`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var c CategoryStats
		rows.Scan(&c.Category, &c.Count)
		st.Categories = append(st.Categories, c)
	}

	top, err := s.db.QueryContext(ctx, `
		SELECT id, title, views, likes FROM videos ORDER BY views DESC, id LIMIT 5`)
	if err != nil {
		return st, err
	}
	defer top.Close()
	for top.Next() {
		var v TopVideo
		top.Scan(&v.ID, &v.Title, &v.Views, &v.Likes)
		st.TopVideos = append(st.TopVideos, v)
	}

	return st, nil
}
