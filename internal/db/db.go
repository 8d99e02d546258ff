// Package db provides PostgreSQL access to the contacts table.
//
// Every operation opens its own connection and closes it before returning.
// The underlying store handles concurrent clients; there is no pooling here.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Store runs queries against the contacts database.
type Store struct {
	databaseURL string
}

// NewStore returns a Store that connects with the given URL on each call.
func NewStore(databaseURL string) *Store {
	return &Store{databaseURL: databaseURL}
}

func (s *Store) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, s.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// FetchContacts returns every contact ordered by last name then first name.
func (s *Store) FetchContacts(ctx context.Context) ([]Contact, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx,
		`SELECT id, first_name, last_name, address, city, state, zipcode, country, valid
		 FROM public.contacts
		 ORDER BY last_name, first_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Address,
			&c.City, &c.State, &c.Zipcode, &c.Country, &c.Valid); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}
	return contacts, nil
}

// UpdateValidationStatus persists the validation outcome for one contact.
// A nil status clears the column.
func (s *Store) UpdateValidationStatus(ctx context.Context, id int64, status json.RawMessage) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx,
		`UPDATE contacts SET valid = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact %d: %w", id, err)
	}
	return nil
}
