package announcement

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("announcement not found")

type Announcement struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"publishedAt"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, title, body string) (Announcement, error) {
	out := Announcement{Title: title, Body: body}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO announcements (title, body)
    VALUES ($1, $2)
    RETURNING id, published_at
  `, title, body).Scan(&out.ID, &out.PublishedAt)
	if err != nil {
		return Announcement{}, err
	}
	return out, nil
}

func (s *Store) List(ctx context.Context) ([]Announcement, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, body, published_at
    FROM announcements
    ORDER BY published_at DESC, id DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Announcement{}
	for rows.Next() {
		var item Announcement
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.PublishedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM announcements WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
