package store

import (
	"context"
	"strings"

	"github.com/rcliao/vidrec/internal/model"
)

// SearchParams holds parameters for searching the catalog.
type SearchParams struct {
	Query    string
	Category string
	Limit    int
}

// SearchVideos finds videos whose title, description, tags or creator
// match the query substring, most viewed first.
func (s *SQLiteStore) SearchVideos(ctx context.Context, p SearchParams) ([]model.Video, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := "%" + p.Query + "%"

	where := []string{"(title LIKE ? OR description LIKE ? OR tags LIKE ? OR creator LIKE ?)"}
	args := []any{query, query, query, query}

	if p.Category != "" {
		where = append(where, "category = ?")
		args = append(args, p.Category)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, tags, category, duration, upload_date,
		        views, likes, creator, embedding
		 FROM videos
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY views DESC, id
		 LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
