package visitor

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repository provides CRUD operations for visitor records.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a visitor repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const visitorColumns = "id, name, apartment_number, purpose, phone_number, check_in_time, notified"

// Create validates the request, assigns id and check-in time, and persists
// the record with notified = false.
func (r *Repository) Create(req CreateVisitorRequest) (*Visitor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := r.db.Exec(
		"INSERT INTO visitors (name, apartment_number, purpose, phone_number, check_in_time, notified) VALUES (?, ?, ?, ?, ?, 0)",
		req.Name, req.ApartmentNumber, req.Purpose, req.PhoneNumber, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting visitor: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.Get(id)
}

// Get returns one visitor by ID.
func (r *Repository) Get(id int64) (*Visitor, error) {
	var v Visitor
	err := r.db.QueryRow(
		"SELECT "+visitorColumns+" FROM visitors WHERE id = ?", id,
	).Scan(&v.ID, &v.Name, &v.ApartmentNumber, &v.Purpose, &v.PhoneNumber, &v.CheckInTime, &v.Notified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading visitor: %w", err)
	}
	return &v, nil
}

// List returns visitors ordered by check-in time, newest first.
// ID breaks ties so same-instant check-ins still list newest first.
func (r *Repository) List(opts ListOptions) ([]*Visitor, error) {
	query := "SELECT " + visitorColumns + " FROM visitors ORDER BY check_in_time DESC, id DESC"
	var args []interface{}
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing visitors: %w", err)
	}
	return scanVisitors(rows)
}

// Count returns the total number of visitor records.
func (r *Repository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM visitors").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting visitors: %w", err)
	}
	return n, nil
}

// Search returns visitors whose name, phone number, or apartment number
// contains the query, case-insensitively, newest first.
func (r *Repository) Search(query string) ([]*Visitor, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(
		"SELECT "+visitorColumns+` FROM visitors
		 WHERE name LIKE ? OR phone_number LIKE ? OR apartment_number LIKE ?
		 ORDER BY check_in_time DESC, id DESC`,
		pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching visitors: %w", err)
	}
	return scanVisitors(rows)
}

// Update replaces the mutable fields of an existing record.
func (r *Repository) Update(id int64, req UpdateVisitorRequest) (*Visitor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		"UPDATE visitors SET name = ?, apartment_number = ?, purpose = ?, phone_number = ? WHERE id = ?",
		req.Name, req.ApartmentNumber, req.Purpose, req.PhoneNumber, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating visitor: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	return r.Get(id)
}

// Delete removes a visitor by ID.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM visitors WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting visitor: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkNotified records that the administrative notification succeeded.
// Returns ErrNotFound if the record was deleted in the meantime.
func (r *Repository) MarkNotified(id int64) error {
	result, err := r.db.Exec("UPDATE visitors SET notified = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking visitor notified: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func scanVisitors(rows *sql.Rows) (_ []*Visitor, err error) {
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var visitors []*Visitor
	for rows.Next() {
		var v Visitor
		if err := rows.Scan(&v.ID, &v.Name, &v.ApartmentNumber, &v.Purpose, &v.PhoneNumber, &v.CheckInTime, &v.Notified); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		visitors = append(visitors, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visitors: %w", err)
	}

	return visitors, nil
}
