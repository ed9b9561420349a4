package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/hashlink/internal/database"
	"github.com/Varun5711/hashlink/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const Schema = `
CREATE TABLE IF NOT EXISTS links (
	id         BIGINT PRIMARY KEY CHECK (id >= 0 AND id <= 4294967295),
	code       TEXT NOT NULL UNIQUE,
	long_url   TEXT NOT NULL,
	clicks     BIGINT NOT NULL DEFAULT 0,
	qr_code    TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS links_expires_at_idx ON links (expires_at) WHERE expires_at IS NOT NULL;
`

type PostgresStorage struct {
	db *database.DBManager
}

func NewPostgresStorage(db *database.DBManager) *PostgresStorage {
	return &PostgresStorage{
		db: db,
	}
}

func (s *PostgresStorage) Migrate(ctx context.Context) error {
	if _, err := s.db.Write().Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Save(ctx context.Context, link *models.Link) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO links (id, code, long_url, clicks, qr_code, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.Write().Exec(ctx, query,
		int64(link.ID),
		link.Code,
		link.LongURL,
		link.Clicks,
		link.QRCode,
		link.CreatedAt,
		time.Now(),
		link.ExpiresAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %d", ErrDuplicate, link.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetByID(ctx context.Context, id uint32) (*models.Link, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT id, code, long_url, clicks, created_at, expires_at, COALESCE(qr_code, '')
		FROM links
		WHERE id = $1
		AND (expires_at IS NULL OR expires_at > NOW())
	`

	link, err := scanLink(s.db.Read().QueryRow(ctx, query, int64(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link %d: %w", id, err)
	}

	return link, nil
}

func (s *PostgresStorage) IncrementClicks(ctx context.Context, id uint32) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		UPDATE links
		SET clicks = clicks + 1,
			updated_at = NOW()
		WHERE id = $1
		AND (expires_at IS NULL OR expires_at > NOW())
		RETURNING clicks
	`

	var clicks int64
	err := s.db.Write().QueryRow(ctx, query, int64(id)).Scan(&clicks)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment clicks: %w", err)
	}

	return clicks, nil
}

func (s *PostgresStorage) List(ctx context.Context, limit, offset int) ([]*models.Link, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var total int
	countQuery := `SELECT COUNT(*) FROM links WHERE expires_at IS NULL OR expires_at > NOW()`
	if err := s.db.Read().QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count links: %w", err)
	}

	query := `
		SELECT id, code, long_url, clicks, created_at, expires_at, COALESCE(qr_code, '')
		FROM links
		WHERE (expires_at IS NULL OR expires_at > NOW())
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.Read().Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	links := make([]*models.Link, 0, limit)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan row: %w", err)
		}
		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return links, total, nil
}

func (s *PostgresStorage) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM links
		WHERE expires_at IS NOT NULL AND expires_at < NOW()
	`

	cmdTag, err := s.db.Write().Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired links: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

func scanLink(row pgx.Row) (*models.Link, error) {
	var (
		link models.Link
		id   int64
	)
	err := row.Scan(
		&id,
		&link.Code,
		&link.LongURL,
		&link.Clicks,
		&link.CreatedAt,
		&link.ExpiresAt,
		&link.QRCode,
	)
	if err != nil {
		return nil, err
	}
	link.ID = uint32(id)
	return &link, nil
}
