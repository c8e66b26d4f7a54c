// Package engine implements the recommendation engine: in-memory views
// over the durable store, content-similarity ranking, recommendation
// serving with feedback logging, and cross-user overlap analysis.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/vidrec/internal/model"
	"github.com/rcliao/vidrec/internal/store"
	"github.com/rcliao/vidrec/internal/tfidf"
)

// LikedRatingThreshold is the minimum rating for a watch to count as a
// positive content signal.
const LikedRatingThreshold = 4.0

// Recommender combines the durable store with in-memory derived views.
// Every mutation writes through to the store first; in-memory state only
// updates after the durable write commits. It is not safe for concurrent
// use — callers serialize access.
type Recommender struct {
	store   store.Store
	entropy *rand.Rand

	videos   []model.Video
	index    map[string]int // video id -> position in videos
	profiles map[string]*profile

	vectorizer *tfidf.Vectorizer
	vectors    map[string]tfidf.Vector
}

// profile is the in-memory derived view of one user: stored preferences
// plus history and likes materialized from the interaction logs.
type profile struct {
	prefs    map[string]any // nil for lazily created entries with no stored profile
	history  []model.WatchEvent
	liked    []string
	likedSet map[string]bool
}

// New creates a Recommender over the given store. Call LoadAll (or
// Refresh) before ranking.
func New(st store.Store) *Recommender {
	return &Recommender{
		store:    st,
		entropy:  rand.New(rand.NewSource(time.Now().UnixNano())),
		index:    map[string]int{},
		profiles: map[string]*profile{},
		vectors:  map[string]tfidf.Vector{},
	}
}

func (r *Recommender) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), r.entropy).String()
}

// LoadAll rehydrates the full in-memory state from the store, replacing
// whatever was there before. Calling it twice with no intervening writes
// yields identical state.
func (r *Recommender) LoadAll(ctx context.Context) error {
	videos, err := r.store.Videos(ctx)
	if err != nil {
		return fmt.Errorf("load videos: %w", err)
	}
	storedProfiles, err := r.store.Profiles(ctx)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	history, err := r.store.WatchHistory(ctx)
	if err != nil {
		return fmt.Errorf("load watch history: %w", err)
	}
	likes, err := r.store.Likes(ctx)
	if err != nil {
		return fmt.Errorf("load likes: %w", err)
	}

	r.videos = videos
	r.index = make(map[string]int, len(videos))
	vectors := make(map[string]tfidf.Vector, len(videos))
	for i, v := range videos {
		r.index[v.ID] = i
		if v.Embedding != nil {
			vectors[v.ID] = v.Embedding
		}
	}
	r.vectors = vectors
	r.vectorizer = nil

	r.profiles = make(map[string]*profile, len(storedProfiles))
	for _, p := range storedProfiles {
		r.profiles[p.UserID] = &profile{prefs: p.Preferences, likedSet: map[string]bool{}}
	}
	// History arrives most-recent-first and stays that way.
	for _, ev := range history {
		p := r.profileFor(ev.UserID)
		p.history = append(p.history, ev)
	}
	for _, ev := range likes {
		p := r.profileFor(ev.UserID)
		if !p.likedSet[ev.VideoID] {
			p.likedSet[ev.VideoID] = true
			p.liked = append(p.liked, ev.VideoID)
		}
	}

	return nil
}

// profileFor returns the in-memory entry for a user, creating a lazy one
// (no stored preferences) when the user has no profile row.
func (r *Recommender) profileFor(userID string) *profile {
	p, ok := r.profiles[userID]
	if !ok {
		p = &profile{likedSet: map[string]bool{}}
		r.profiles[userID] = p
	}
	return p
}

// RecomputeVectors rebuilds the TF-IDF vocabulary over the current
// catalog, caches a vector onto every video and persists the vectors.
// The new vocabulary and vectors are swapped in together so ranking
// never sees a partially updated corpus.
func (r *Recommender) RecomputeVectors(ctx context.Context) error {
	docs := make([]string, len(r.videos))
	for i, v := range r.videos {
		docs[i] = videoDocument(v)
	}

	vectorizer := tfidf.Fit(docs)
	vectors := make(map[string]tfidf.Vector, len(r.videos))
	persist := make(map[string][]float64, len(r.videos))
	for i := range r.videos {
		vec := vectorizer.Transform(docs[i])
		r.videos[i].Embedding = vec
		vectors[r.videos[i].ID] = vec
		persist[r.videos[i].ID] = vec
	}

	if err := r.store.SaveEmbeddings(ctx, persist); err != nil {
		return fmt.Errorf("persist embeddings: %w", err)
	}

	r.vectorizer = vectorizer
	r.vectors = vectors
	return nil
}

// Refresh reloads all state and recomputes similarity vectors. This is
// the synchronous batch step expected to run before ranking.
func (r *Recommender) Refresh(ctx context.Context) error {
	if err := r.LoadAll(ctx); err != nil {
		return err
	}
	return r.RecomputeVectors(ctx)
}

// videoDocument concatenates the text fields used for similarity:
// title, description, then tags joined by whitespace.
func videoDocument(v model.Video) string {
	parts := []string{v.Title, v.Description}
	parts = append(parts, v.Tags...)
	return strings.Join(parts, " ")
}

// AddVideo ingests a video, assigning an id when the caller supplies
// none, and updates the in-memory catalog. The cached similarity vectors
// go stale until the next RecomputeVectors.
func (r *Recommender) AddVideo(ctx context.Context, v model.Video) (*model.Video, error) {
	if v.ID == "" {
		v.ID = r.newID()
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}

	if err := r.store.AddVideo(ctx, v); err != nil {
		return nil, err
	}

	if i, ok := r.index[v.ID]; ok {
		r.videos[i] = v
	} else {
		r.index[v.ID] = len(r.videos)
		r.videos = append(r.videos, v)
	}
	delete(r.vectors, v.ID)

	return &v, nil
}

// UpsertProfile replaces a user's preferences document. Derived history
// and likes are untouched.
func (r *Recommender) UpsertProfile(ctx context.Context, userID string, prefs map[string]any) (*model.UserProfile, error) {
	stored, err := r.store.UpsertProfile(ctx, userID, prefs)
	if err != nil {
		return nil, err
	}
	r.profileFor(userID).prefs = stored.Preferences
	return stored, nil
}

// RecordWatch appends a watch event, bumps the video's view counter and
// prepends the event to the user's in-memory history. A user with no
// profile row gets a lazy in-memory entry; no durable profile row is
// created.
func (r *Recommender) RecordWatch(ctx context.Context, userID, videoID string, rating *float64) error {
	ev := model.WatchEvent{
		UserID:    userID,
		VideoID:   videoID,
		Timestamp: time.Now().UTC(),
		Rating:    rating,
	}
	if err := r.store.AppendWatch(ctx, ev); err != nil {
		return err
	}

	p := r.profileFor(userID)
	p.history = append([]model.WatchEvent{ev}, p.history...)
	if i, ok := r.index[videoID]; ok {
		r.videos[i].Views++
	}
	return nil
}

// RecordLike appends a like event, bumps the video's like counter and
// adds the video to the user's liked set if absent. The durable log
// grows by one row per call regardless.
func (r *Recommender) RecordLike(ctx context.Context, userID, videoID string) error {
	ev := model.LikeEvent{
		UserID:    userID,
		VideoID:   videoID,
		Timestamp: time.Now().UTC(),
	}
	if err := r.store.AppendLike(ctx, ev); err != nil {
		return err
	}

	p := r.profileFor(userID)
	if !p.likedSet[videoID] {
		p.likedSet[videoID] = true
		p.liked = append(p.liked, videoID)
	}
	if i, ok := r.index[videoID]; ok {
		r.videos[i].Likes++
	}
	return nil
}

// LikedVideos returns the user's deduplicated liked-video ids in first-
// like order.
func (r *Recommender) LikedVideos(userID string) []string {
	p, ok := r.profiles[userID]
	if !ok {
		return nil
	}
	out := make([]string, len(p.liked))
	copy(out, p.liked)
	return out
}

// WatchHistory returns the user's watch events, most recent first.
func (r *Recommender) WatchHistory(userID string) []model.WatchEvent {
	p, ok := r.profiles[userID]
	if !ok {
		return nil
	}
	out := make([]model.WatchEvent, len(p.history))
	copy(out, p.history)
	return out
}

// Effectiveness reports click-through metrics for the trailing window,
// optionally scoped to one user.
func (r *Recommender) Effectiveness(ctx context.Context, userID string) (*model.Effectiveness, error) {
	return r.store.Effectiveness(ctx, userID)
}
