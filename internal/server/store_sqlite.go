package server

import (
	"database/sql"
	"errors"
	"fmt"

	"itemstore/internal/shared"
)

// SQLiteStore implements Store on an in-memory SQLite database. The single
// pooled connection serializes statements, and Update runs in a transaction.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (s *SQLiteStore) List() ([]shared.Item, error) {
	rows, err := s.DB.Query(`SELECT id, name, description FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []shared.Item{}
	for rows.Next() {
		var it shared.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Get(id string) (shared.Item, error) {
	row := s.DB.QueryRow(`SELECT id, name, description FROM items WHERE id = ?`, id)

	var it shared.Item
	if err := row.Scan(&it.ID, &it.Name, &it.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return shared.Item{}, ErrNotFound
		}
		return shared.Item{}, err
	}
	return it, nil
}

func (s *SQLiteStore) Create(item shared.Item) error {
	res, err := s.DB.Exec(
		`INSERT INTO items (id, name, description) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		item.ID, item.Name, item.Description,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *SQLiteStore) Update(id string, item shared.Item) (err error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	found, err := rowExists(tx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	if item.ID != id {
		taken, err := rowExists(tx, item.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyExists
		}
	}

	if _, err = tx.Exec(
		`UPDATE items SET id=?, name=?, description=? WHERE id=?`,
		item.ID, item.Name, item.Description, id,
	); err != nil {
		return fmt.Errorf("update %q: %w", id, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Delete(id string) error {
	res, err := s.DB.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Len() (int, error) {
	var n int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func rowExists(tx *sql.Tx, id string) (bool, error) {
	var one int
	err := tx.QueryRow(`SELECT 1 FROM items WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
