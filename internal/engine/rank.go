package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/rcliao/vidrec/internal/model"
	"github.com/rcliao/vidrec/internal/tfidf"
)

// DefaultLimit is the recommendation list length when the caller passes
// a non-positive limit.
const DefaultLimit = 10

// Recommend produces a scored, descending-ranked list of videos the user
// has not watched, at most limit long. Watched videos are never
// re-recommended. Scoring:
//
//   - with rated history at or above LikedRatingThreshold, a candidate
//     scores the average cosine similarity against those liked videos;
//   - otherwise, similarity against the user's stated preference
//     keywords, falling back to 0 when there are none;
//   - an unknown user gets a cold-start ranking by global popularity.
//
// Equal scores break by descending views, then ascending id, so the
// ordering is deterministic. Recommend has no side effects; serving and
// logging live in ServeRecommendations.
func (r *Recommender) Recommend(userID string, limit int) []model.Recommendation {
	if limit <= 0 {
		limit = DefaultLimit
	}

	p, ok := r.profiles[userID]
	if !ok {
		return r.popularityRanking(nil, limit)
	}

	watched := make(map[string]bool, len(p.history))
	for _, ev := range p.history {
		watched[ev.VideoID] = true
	}

	var likedVecs []tfidf.Vector
	seen := map[string]bool{}
	for _, ev := range p.history {
		if ev.Rating == nil || *ev.Rating < LikedRatingThreshold || seen[ev.VideoID] {
			continue
		}
		seen[ev.VideoID] = true
		if vec, ok := r.vectors[ev.VideoID]; ok {
			likedVecs = append(likedVecs, vec)
		}
	}

	var prefVec tfidf.Vector
	if len(likedVecs) == 0 {
		prefVec = r.preferenceVector(p.prefs)
	}

	recs := make([]model.Recommendation, 0, len(r.videos))
	for _, v := range r.videos {
		if watched[v.ID] {
			continue
		}
		vec := r.vectors[v.ID]

		var score float64
		switch {
		case len(likedVecs) > 0:
			var sum float64
			for _, lv := range likedVecs {
				sum += tfidf.Cosine(vec, lv)
			}
			score = sum / float64(len(likedVecs))
		case prefVec != nil:
			score = tfidf.Cosine(vec, prefVec)
		}

		recs = append(recs, model.Recommendation{Video: v, Score: score})
	}

	sortRecommendations(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// ServeRecommendations ranks, logs every returned (video, score) pair as
// one recommendation-event batch, then returns the list. A list that
// cannot be logged is not returned.
func (r *Recommender) ServeRecommendations(ctx context.Context, userID string, limit int, recType string) ([]model.Recommendation, error) {
	recs := r.Recommend(userID, limit)
	if err := r.store.LogRecommendations(ctx, userID, recType, recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// popularityRanking is the cold-start ordering: unwatched videos by view
// count, scores normalized to [0,1] by the most-viewed candidate.
func (r *Recommender) popularityRanking(watched map[string]bool, limit int) []model.Recommendation {
	var maxViews int64
	for _, v := range r.videos {
		if !watched[v.ID] && v.Views > maxViews {
			maxViews = v.Views
		}
	}

	recs := make([]model.Recommendation, 0, len(r.videos))
	for _, v := range r.videos {
		if watched[v.ID] {
			continue
		}
		var score float64
		if maxViews > 0 {
			score = float64(v.Views) / float64(maxViews)
		}
		recs = append(recs, model.Recommendation{Video: v, Score: score})
	}

	sortRecommendations(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// preferenceVector derives a content vector from the stated preference
// keywords (interests and preferred categories). Returns nil when the
// vocabulary is unfitted or the profile states none.
func (r *Recommender) preferenceVector(prefs map[string]any) tfidf.Vector {
	if r.vectorizer == nil || prefs == nil {
		return nil
	}

	var keywords []string
	keywords = append(keywords, stringList(prefs["interests"])...)
	keywords = append(keywords, stringList(prefs["preferred_categories"])...)
	if len(keywords) == 0 {
		return nil
	}

	return r.vectorizer.Transform(strings.Join(keywords, " "))
}

// stringList extracts a string slice from a decoded JSON value.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func sortRecommendations(recs []model.Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		if recs[i].Video.Views != recs[j].Video.Views {
			return recs[i].Video.Views > recs[j].Video.Views
		}
		return recs[i].Video.ID < recs[j].Video.ID
	})
}
