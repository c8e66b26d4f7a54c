// Package store provides durable persistence for the catalog, user
// profiles and interaction logs, backed by SQLite.
package store

import (
	"context"

	"github.com/rcliao/vidrec/internal/model"
)

// Store defines the persistence interface consumed by the engine.
// All mutating calls report definitively whether the write committed;
// storage failures propagate rather than being swallowed.
type Store interface {
	// AddVideo inserts or replaces a catalog record.
	AddVideo(ctx context.Context, v model.Video) error

	// Videos returns the full catalog ordered by id.
	Videos(ctx context.Context) ([]model.Video, error)

	// SaveEmbeddings persists computed similarity vectors in one
	// transaction. Ids absent from the catalog are ignored.
	SaveEmbeddings(ctx context.Context, embeddings map[string][]float64) error

	// UpsertProfile replaces a user's preferences document wholesale and
	// refreshes updated_at. created_at survives re-creation.
	UpsertProfile(ctx context.Context, userID string, prefs map[string]any) (*model.UserProfile, error)

	// Profiles returns all stored user profiles.
	Profiles(ctx context.Context) ([]model.UserProfile, error)

	// AppendWatch appends a watch event and increments the video's view
	// counter atomically.
	AppendWatch(ctx context.Context, ev model.WatchEvent) error

	// AppendLike appends a like event and increments the video's like
	// counter atomically. The durable log is not deduplicated.
	AppendLike(ctx context.Context, ev model.LikeEvent) error

	// WatchHistory returns all watch events, most recent first.
	WatchHistory(ctx context.Context) ([]model.WatchEvent, error)

	// Likes returns all like events in insertion order.
	Likes(ctx context.Context) ([]model.LikeEvent, error)

	// LogRecommendations writes one recommendation event per served
	// (video, score) pair, all in a single transaction.
	LogRecommendations(ctx context.Context, userID, recType string, recs []model.Recommendation) error

	// Effectiveness computes click-through metrics over the trailing
	// 30-day window, optionally scoped to one user ("" means all users).
	Effectiveness(ctx context.Context, userID string) (*model.Effectiveness, error)

	// Close closes the store.
	Close() error
}
