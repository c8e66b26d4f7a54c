package engine

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rcliao/vidrec/internal/model"
	"github.com/rcliao/vidrec/internal/store"
)

func newTestEngine(t *testing.T) (*Recommender, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

func rating(f float64) *float64 { return &f }

func video(id, title string, tags ...string) model.Video {
	if tags == nil {
		tags = []string{}
	}
	return model.Video{
		ID:       id,
		Title:    title,
		Tags:     tags,
		Category: "Education",
		Duration: 1800,
		Creator:  "creator",
	}
}

func TestAddVideoGeneratesID(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	v, err := eng.AddVideo(ctx, video("", "Untitled upload"))
	if err != nil {
		t.Fatalf("add video: %v", err)
	}
	if v.ID == "" {
		t.Fatal("expected generated id")
	}

	v2, _ := eng.AddVideo(ctx, video("", "Another upload"))
	if v2.ID == v.ID {
		t.Error("expected distinct generated ids")
	}
}

func TestLoadAllIdempotent(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	eng.AddVideo(ctx, video("vid1", "Python ML", "python", "ml"))
	eng.AddVideo(ctx, video("vid2", "Pasta", "cooking"))
	eng.UpsertProfile(ctx, "u1", map[string]any{"interests": []any{"python"}})
	eng.RecordWatch(ctx, "u1", "vid1", rating(5.0))
	eng.RecordLike(ctx, "u1", "vid1")

	if err := eng.LoadAll(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	history1 := eng.WatchHistory("u1")
	liked1 := eng.LikedVideos("u1")

	if err := eng.LoadAll(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	history2 := eng.WatchHistory("u1")
	liked2 := eng.LikedVideos("u1")

	if !reflect.DeepEqual(history1, history2) {
		t.Errorf("history changed across reloads: %v != %v", history1, history2)
	}
	if !reflect.DeepEqual(liked1, liked2) {
		t.Errorf("liked set changed across reloads: %v != %v", liked1, liked2)
	}
	if len(history1) != 1 || len(liked1) != 1 {
		t.Errorf("expected 1 watch and 1 like, got %d/%d", len(history1), len(liked1))
	}
}

func TestRecordLikeDedupesInMemory(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)

	eng.AddVideo(ctx, video("vid1", "Python ML", "python"))
	for i := 0; i < 3; i++ {
		if err := eng.RecordLike(ctx, "u1", "vid1"); err != nil {
			t.Fatalf("like: %v", err)
		}
	}

	liked := eng.LikedVideos("u1")
	if len(liked) != 1 || liked[0] != "vid1" {
		t.Errorf("expected deduplicated liked set [vid1], got %v", liked)
	}

	// The durable log grows by one row per call regardless
	rows, err := s.Likes(ctx)
	if err != nil {
		t.Fatalf("likes: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("expected 3 like rows, got %d", len(rows))
	}

	// Dedupe survives a reload too
	if err := eng.LoadAll(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if liked := eng.LikedVideos("u1"); len(liked) != 1 {
		t.Errorf("expected deduplicated liked set after reload, got %v", liked)
	}
}

func TestLazyProfileCreatesNoDurableRow(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)

	eng.AddVideo(ctx, video("vid1", "Python ML", "python"))
	if err := eng.RecordWatch(ctx, "ghost", "vid1", nil); err != nil {
		t.Fatalf("watch: %v", err)
	}

	if history := eng.WatchHistory("ghost"); len(history) != 1 {
		t.Fatalf("expected lazy in-memory history, got %v", history)
	}

	profiles, err := s.Profiles(ctx)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected no phantom profile row, got %d", len(profiles))
	}
}

func TestWatchHistoryMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	eng.AddVideo(ctx, video("vid1", "First", "a"))
	eng.AddVideo(ctx, video("vid2", "Second", "b"))
	eng.RecordWatch(ctx, "u1", "vid1", nil)
	eng.RecordWatch(ctx, "u1", "vid2", nil)

	history := eng.WatchHistory("u1")
	if len(history) != 2 {
		t.Fatalf("expected 2 events, got %d", len(history))
	}
	if history[0].VideoID != "vid2" {
		t.Errorf("expected most recent watch first, got %s", history[0].VideoID)
	}
}

func TestRecomputeVectorsPersists(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)

	eng.AddVideo(ctx, video("vid1", "Python ML tutorial", "python", "ml"))
	eng.AddVideo(ctx, video("vid2", "")) // no text content at all

	if err := eng.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	videos, _ := s.Videos(ctx)
	for _, v := range videos {
		if v.Embedding == nil {
			t.Errorf("%s: expected persisted embedding", v.ID)
		}
	}

	// A video with no text gets a zero vector, not an error
	var empty model.Video
	for _, v := range videos {
		if v.ID == "vid2" {
			empty = v
		}
	}
	for _, f := range empty.Embedding {
		if f != 0 {
			t.Fatalf("expected zero vector for textless video, got %v", empty.Embedding)
		}
	}
}
