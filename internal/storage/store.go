package storage

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// PreviewRecord is a generated preview image persisted for download.
type PreviewRecord struct {
	ID        string
	SessionID string
	PNG       []byte
	CreatedAt time.Time
}

// Store defines the persistence interface. Blobs (analysis results and
// generated previews derive from the user's facial photo) are encrypted at
// rest.
type Store interface {
	// Advice cache: analysis results keyed by mode+image hash.
	// GetAdviceCache returns nil, nil on a cache miss.
	GetAdviceCache(hash string) ([]byte, error)
	SetAdviceCache(hash string, payload []byte) error

	// Generated previews, served by the download endpoint.
	SavePreview(rec *PreviewRecord) error
	// GetPreview returns nil, nil when no record exists.
	GetPreview(id string) (*PreviewRecord, error)
	DeletePreviewsBefore(cutoff time.Time) (int64, error)

	Close() error
}

// SQLiteStore implements Store using SQLite with encrypted blobs.
type SQLiteStore struct {
	db            *sql.DB
	encryptionKey []byte
	mu            sync.RWMutex
}

// NewSQLiteStore opens (or creates) the database at dbPath. The
// encryptionKey is used to encrypt and decrypt stored blobs.
func NewSQLiteStore(dbPath string, encryptionKey []byte) (*SQLiteStore, error) {
	// WAL mode and busy timeout for better concurrency
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{
		db:            db,
		encryptionKey: encryptionKey,
	}

	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	adviceCacheQuery := `
	CREATE TABLE IF NOT EXISTS advice_cache (
		image_hash TEXT PRIMARY KEY,
		encrypted_result TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(adviceCacheQuery); err != nil {
		return fmt.Errorf("failed to create advice_cache table: %w", err)
	}

	previewsQuery := `
	CREATE TABLE IF NOT EXISTS previews (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		encrypted_png TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(previewsQuery); err != nil {
		return fmt.Errorf("failed to create previews table: %w", err)
	}

	return nil
}

// GetAdviceCache retrieves a cached analysis result by image hash.
// Returns nil, nil if no cache entry exists.
func (s *SQLiteStore) GetAdviceCache(hash string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var encrypted string
	err := s.db.QueryRow(
		"SELECT encrypted_result FROM advice_cache WHERE image_hash = ?",
		hash,
	).Scan(&encrypted)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query advice cache: %w", err)
	}

	payload, err := Decrypt(encrypted, s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt advice cache entry: %w", err)
	}
	return payload, nil
}

// SetAdviceCache stores an analysis result under the given image hash.
func (s *SQLiteStore) SetAdviceCache(hash string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encrypted, err := Encrypt(payload, s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt advice cache entry: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO advice_cache (image_hash, encrypted_result)
		VALUES (?, ?)
		ON CONFLICT(image_hash) DO UPDATE SET
			encrypted_result = excluded.encrypted_result,
			created_at = CURRENT_TIMESTAMP
	`, hash, encrypted)
	if err != nil {
		return fmt.Errorf("failed to save advice cache entry: %w", err)
	}
	return nil
}

// SavePreview stores a generated preview image.
func (s *SQLiteStore) SavePreview(rec *PreviewRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encrypted, err := Encrypt(rec.PNG, s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt preview: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO previews (id, session_id, encrypted_png, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.ID, rec.SessionID, encrypted, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

// GetPreview retrieves a stored preview by ID. Returns nil, nil when no
// record exists.
func (s *SQLiteStore) GetPreview(id string) (*PreviewRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sessionID, encrypted string
	var createdAt time.Time
	err := s.db.QueryRow(
		"SELECT session_id, encrypted_png, created_at FROM previews WHERE id = ?",
		id,
	).Scan(&sessionID, &encrypted, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preview: %w", err)
	}

	png, err := Decrypt(encrypted, s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt preview: %w", err)
	}

	return &PreviewRecord{
		ID:        id,
		SessionID: sessionID,
		PNG:       png,
		CreatedAt: createdAt,
	}, nil
}

// DeletePreviewsBefore removes previews created before the cutoff and
// returns how many were deleted.
func (s *SQLiteStore) DeletePreviewsBefore(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM previews WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old previews: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
