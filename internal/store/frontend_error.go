package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shulsoft/gabbai/internal/model"
)

type FrontendErrorStore struct {
	db *sql.DB
}

func NewFrontendErrorStore(db *sql.DB) *FrontendErrorStore {
	return &FrontendErrorStore{db: db}
}

const frontendErrorCols = `id, user_email, error_type, error_message, error_stack, component_stack, url, user_agent, timestamp`

func scanFrontendError(scanner interface{ Scan(...any) error }) (*model.FrontendError, error) {
	var e model.FrontendError
	err := scanner.Scan(&e.ID, &e.UserEmail, &e.ErrorType, &e.ErrorMessage,
		&e.ErrorStack, &e.ComponentStack, &e.URL, &e.UserAgent, &e.Timestamp)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *FrontendErrorStore) Create(e model.FrontendError) (*model.FrontendError, error) {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO frontend_errors (`+frontendErrorCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserEmail, e.ErrorType, e.ErrorMessage, e.ErrorStack, e.ComponentStack, e.URL, e.UserAgent, e.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert frontend error: %w", err)
	}
	return &e, nil
}

func (s *FrontendErrorStore) List(limit int) ([]model.FrontendError, error) {
	rows, err := s.db.Query(`SELECT `+frontendErrorCols+` FROM frontend_errors ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list frontend errors: %w", err)
	}
	defer rows.Close()

	var errors []model.FrontendError
	for rows.Next() {
		e, err := scanFrontendError(rows)
		if err != nil {
			return nil, fmt.Errorf("scan frontend error: %w", err)
		}
		errors = append(errors, *e)
	}
	return errors, rows.Err()
}

// DeleteOlderThan prunes records older than the cutoff.
func (s *FrontendErrorStore) DeleteOlderThan(before time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM frontend_errors WHERE timestamp < ?`, before)
	if err != nil {
		return 0, fmt.Errorf("delete old frontend errors: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
