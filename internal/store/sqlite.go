package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/rcliao/vidrec/internal/model"
	"github.com/rcliao/vidrec/internal/tfidf"
)

// SQLiteStore implements Store using SQLite. It is an explicit handle:
// callers own its lifecycle and all writes go through it sequentially.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS videos (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT,
		tags        TEXT,
		category    TEXT,
		duration    INTEGER,
		upload_date TEXT,
		views       INTEGER NOT NULL DEFAULT 0,
		likes       INTEGER NOT NULL DEFAULT 0,
		creator     TEXT,
		embedding   BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_videos_category ON videos(category);
	CREATE INDEX IF NOT EXISTS idx_videos_views ON videos(views DESC);

	CREATE TABLE IF NOT EXISTS user_profiles (
		user_id     TEXT PRIMARY KEY,
		preferences TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS watch_history (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id   TEXT NOT NULL,
		video_id  TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		rating    REAL
	);
	CREATE INDEX IF NOT EXISTS idx_watch_user_video ON watch_history(user_id, video_id);
	CREATE INDEX IF NOT EXISTS idx_watch_ts ON watch_history(timestamp DESC);

	CREATE TABLE IF NOT EXISTS liked_videos (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id   TEXT NOT NULL,
		video_id  TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_liked_user ON liked_videos(user_id);

	CREATE TABLE IF NOT EXISTS recommendation_logs (
		id                   INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id              TEXT NOT NULL,
		video_id             TEXT NOT NULL,
		recommendation_score REAL NOT NULL,
		timestamp            TEXT NOT NULL,
		recommendation_type  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_recs_user ON recommendation_logs(user_id);
	CREATE INDEX IF NOT EXISTS idx_recs_ts ON recommendation_logs(timestamp DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// AddVideo inserts or replaces a catalog record.
func (s *SQLiteStore) AddVideo(ctx context.Context, v model.Video) error {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	var embedding []byte
	if v.Embedding != nil {
		embedding = tfidf.Encode(v.Embedding)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO videos
		 (id, title, description, tags, category, duration, upload_date, views, likes, creator, embedding)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.Description, string(tagsJSON), v.Category, v.Duration,
		v.UploadDate, v.Views, v.Likes, v.Creator, embedding)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

// Videos returns the full catalog ordered by id.
func (s *SQLiteStore) Videos(ctx context.Context) ([]model.Video, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, tags, category, duration, upload_date,
		        views, likes, creator, embedding
		 FROM videos ORDER BY id`)
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

// SaveEmbeddings persists similarity vectors for the given videos in a
// single transaction so ranking never observes a half-written recompute.
func (s *SQLiteStore) SaveEmbeddings(ctx context.Context, embeddings map[string][]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for id, vec := range embeddings {
		if _, err := tx.ExecContext(ctx,
			`UPDATE videos SET embedding = ? WHERE id = ?`, tfidf.Encode(vec), id); err != nil {
			return fmt.Errorf("save embedding %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// UpsertProfile replaces the preferences document and refreshes
// updated_at. A first write sets created_at; re-creation preserves it.
func (s *SQLiteStore) UpsertProfile(ctx context.Context, userID string, prefs map[string]any) (*model.UserProfile, error) {
	if prefs == nil {
		prefs = map[string]any{}
	}
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, preferences, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   preferences = excluded.preferences,
		   updated_at  = excluded.updated_at`,
		userID, string(prefsJSON), now, now)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, preferences, created_at, updated_at FROM user_profiles WHERE user_id = ?`,
		userID)
	return scanProfile(row)
}

// Profiles returns all stored user profiles ordered by user id.
func (s *SQLiteStore) Profiles(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, preferences, created_at, updated_at FROM user_profiles ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []model.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// AppendWatch appends a watch event and bumps the video's view counter
// in one transaction. The video row is not required to exist.
func (s *SQLiteStore) AppendWatch(ctx context.Context, ev model.WatchEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var rating any
	if ev.Rating != nil {
		rating = *ev.Rating
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO watch_history (user_id, video_id, timestamp, rating) VALUES (?, ?, ?, ?)`,
		ev.UserID, ev.VideoID, ev.Timestamp.UTC().Format(time.RFC3339), rating); err != nil {
		return fmt.Errorf("insert watch event: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE videos SET views = views + 1 WHERE id = ?`, ev.VideoID); err != nil {
		return fmt.Errorf("bump views: %w", err)
	}
	return tx.Commit()
}

// AppendLike appends a like event and bumps the video's like counter in
// one transaction. Repeated likes append repeated rows.
func (s *SQLiteStore) AppendLike(ctx context.Context, ev model.LikeEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO liked_videos (user_id, video_id, timestamp) VALUES (?, ?, ?)`,
		ev.UserID, ev.VideoID, ev.Timestamp.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert like event: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE videos SET likes = likes + 1 WHERE id = ?`, ev.VideoID); err != nil {
		return fmt.Errorf("bump likes: %w", err)
	}
	return tx.Commit()
}

// WatchHistory returns all watch events, most recent first.
func (s *SQLiteStore) WatchHistory(ctx context.Context) ([]model.WatchEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, video_id, timestamp, rating
		 FROM watch_history ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.WatchEvent
	for rows.Next() {
		var ev model.WatchEvent
		var ts string
		var rating sql.NullFloat64
		if err := rows.Scan(&ev.UserID, &ev.VideoID, &ts, &rating); err != nil {
			return nil, err
		}
		ev.Timestamp, _ = time.Parse(time.RFC3339, ts)
		if rating.Valid {
			r := rating.Float64
			ev.Rating = &r
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Likes returns all like events in insertion order.
func (s *SQLiteStore) Likes(ctx context.Context) ([]model.LikeEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, video_id, timestamp FROM liked_videos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.LikeEvent
	for rows.Next() {
		var ev model.LikeEvent
		var ts string
		if err := rows.Scan(&ev.UserID, &ev.VideoID, &ts); err != nil {
			return nil, err
		}
		ev.Timestamp, _ = time.Parse(time.RFC3339, ts)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LogRecommendations writes the whole served list in one transaction:
// either every (video, score) pair is logged or none is.
func (s *SQLiteStore) LogRecommendations(ctx context.Context, userID, recType string, recs []model.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recommendation_logs (user_id, video_id, recommendation_score, timestamp, recommendation_type)
			 VALUES (?, ?, ?, ?, ?)`,
			userID, rec.Video.ID, rec.Score, now, recType); err != nil {
			return fmt.Errorf("insert recommendation log: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(row scanner) (model.Video, error) {
	var v model.Video
	var description, tagsJSON, category, uploadDate, creator sql.NullString
	var embedding []byte

	err := row.Scan(&v.ID, &v.Title, &description, &tagsJSON, &category,
		&v.Duration, &uploadDate, &v.Views, &v.Likes, &creator, &embedding)
	if err != nil {
		return v, err
	}

	v.Description = description.String
	v.Category = category.String
	v.UploadDate = uploadDate.String
	v.Creator = creator.String
	v.Tags = []string{}
	if tagsJSON.Valid && tagsJSON.String != "" {
		json.Unmarshal([]byte(tagsJSON.String), &v.Tags)
	}
	if len(embedding) > 0 {
		v.Embedding = tfidf.Decode(embedding)
	}

	return v, nil
}

func scanProfile(row scanner) (*model.UserProfile, error) {
	var p model.UserProfile
	var prefsJSON sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&p.UserID, &prefsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	p.Preferences = map[string]any{}
	if prefsJSON.Valid && prefsJSON.String != "" {
		json.Unmarshal([]byte(prefsJSON.String), &p.Preferences)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &p, nil
}
