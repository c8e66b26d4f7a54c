// Package model defines the core catalog and interaction data types.
package model

import "time"

// Video represents a catalog entry.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Category    string    `json:"category"`
	Duration    int       `json:"duration"` // seconds
	UploadDate  string    `json:"upload_date"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Creator     string    `json:"creator"`
	Embedding   []float64 `json:"-"` // derived, nil until vectors are computed
}

// UserProfile holds a user's stated preferences. The preferences document
// is caller-defined: interests, preferred categories, duration bounds or
// any other keys the caller wants to store.
type UserProfile struct {
	UserID      string         `json:"user_id"`
	Preferences map[string]any `json:"preferences"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// WatchEvent is one watch action. Rating is optional and unvalidated;
// the engine treats ratings on a 1.0-5.0 scale.
type WatchEvent struct {
	UserID    string    `json:"user_id"`
	VideoID   string    `json:"video_id"`
	Timestamp time.Time `json:"timestamp"`
	Rating    *float64  `json:"rating,omitempty"`
}

// LikeEvent is one like action.
type LikeEvent struct {
	UserID    string    `json:"user_id"`
	VideoID   string    `json:"video_id"`
	Timestamp time.Time `json:"timestamp"`
}

// RecommendationEvent records one served recommendation.
type RecommendationEvent struct {
	UserID    string    `json:"user_id"`
	VideoID   string    `json:"video_id"`
	Score     float64   `json:"recommendation_score"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"recommendation_type"`
}

// Recommendation pairs a candidate video with its ranking score.
type Recommendation struct {
	Video Video   `json:"video"`
	Score float64 `json:"score"`
}

// Effectiveness summarizes how served recommendations performed over the
// trailing analysis window.
type Effectiveness struct {
	TotalRecommendations   int     `json:"total_recommendations"`
	ClickedRecommendations int     `json:"clicked_recommendations"`
	ClickThroughRate       float64 `json:"click_through_rate"`
	AvgRating              float64 `json:"avg_rating"`
}

// Overlap reports one pair of users with intersecting watch sets.
// UserA sorts before UserB; transferable candidates are videos UserA
// rated highly that UserB has not watched.
type Overlap struct {
	UserA                       string   `json:"user_a"`
	UserB                       string   `json:"user_b"`
	CommonVideoIDs              []string `json:"common_video_ids"`
	TransferableRecommendations []string `json:"transferable_recommendations"`
}
