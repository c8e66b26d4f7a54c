package store

import (
	"context"
	"strings"
	"time"

	"github.com/rcliao/vidrec/internal/model"
)

// effectivenessWindow is the trailing period a recommendation stays in
// scope for click-through analysis.
const effectivenessWindow = 30 * 24 * time.Hour

// Effectiveness joins served recommendations against watch history.
// A recommendation counts as clicked when any watch event exists for the
// same (user, video) pair, regardless of order. avgRating averages the
// non-null ratings of matched watch events; unrated watches still count
// as clicks. An empty window yields all-zero metrics.
func (s *SQLiteStore) Effectiveness(ctx context.Context, userID string) (*model.Effectiveness, error) {
	cutoff := time.Now().UTC().Add(-effectivenessWindow).Format(time.RFC3339)

	where := []string{"r.timestamp >= ?"}
	args := []any{cutoff}
	if userID != "" {
		where = append(where, "r.user_id = ?")
		args = append(args, userID)
	}
	cond := strings.Join(where, " AND ")

	eff := &model.Effectiveness{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recommendation_logs r WHERE `+cond, args...).
		Scan(&eff.TotalRecommendations)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recommendation_logs r
		 WHERE `+cond+` AND EXISTS (
		   SELECT 1 FROM watch_history w
		   WHERE w.user_id = r.user_id AND w.video_id = r.video_id
		 )`, args...).
		Scan(&eff.ClickedRecommendations)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(w.rating), 0) FROM watch_history w
		 WHERE w.rating IS NOT NULL AND EXISTS (
		   SELECT 1 FROM recommendation_logs r
		   WHERE r.user_id = w.user_id AND r.video_id = w.video_id AND `+cond+`
		 )`, args...).
		Scan(&eff.AvgRating)
	if err != nil {
		return nil, err
	}

	if eff.TotalRecommendations > 0 {
		eff.ClickThroughRate = float64(eff.ClickedRecommendations) / float64(eff.TotalRecommendations)
	}

	return eff, nil
}
