package database

import (
	"fmt"
	"time"

	"jansel.dev/shop-picker-go/internal/game"
)

// Store records pick history on top of DB. A nil *Store is valid and makes
// every method a no-op, so the automation layer can run without persistence.
type Store struct {
	db        *DB
	sessionID int64
}

// NewStore creates a pick history store
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// StartSession opens a new session row and remembers its id.
func (s *Store) StartSession(strategy string) error {
	if s == nil {
		return nil
	}

	result, err := s.db.conn.Exec(
		"INSERT INTO sessions (strategy, started_at) VALUES (?, ?)",
		strategy, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	s.sessionID, err = result.LastInsertId()
	return err
}

// EndSession stamps the current session's end time.
func (s *Store) EndSession() error {
	if s == nil || s.sessionID == 0 {
		return nil
	}

	_, err := s.db.conn.Exec(
		"UPDATE sessions SET ended_at = ? WHERE id = ?",
		time.Now(), s.sessionID,
	)
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}

	s.sessionID = 0
	return nil
}

// SessionID returns the open session id, 0 when none is open.
func (s *Store) SessionID() int64 {
	if s == nil {
		return 0
	}
	return s.sessionID
}

// RecordPick persists one executed pick.
func (s *Store) RecordPick(card game.Card, strategy string) error {
	if s == nil {
		return nil
	}

	var sessionID interface{}
	if s.sessionID != 0 {
		sessionID = s.sessionID
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO picks (session_id, card_name, cost, shop_index, confidence, strategy, picked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sessionID, card.Name, card.Cost, card.ShopIndex, card.Confidence, strategy, time.Now())
	if err != nil {
		return fmt.Errorf("recording pick: %w", err)
	}

	return nil
}

// TotalPicks counts every pick ever recorded.
func (s *Store) TotalPicks() (int64, error) {
	if s == nil {
		return 0, nil
	}

	var count int64
	err := s.db.conn.QueryRow("SELECT COUNT(*) FROM picks").Scan(&count)
	return count, err
}

// SessionPicks counts picks in the open session.
func (s *Store) SessionPicks() (int64, error) {
	if s == nil || s.sessionID == 0 {
		return 0, nil
	}

	var count int64
	err := s.db.conn.QueryRow(
		"SELECT COUNT(*) FROM picks WHERE session_id = ?", s.sessionID,
	).Scan(&count)
	return count, err
}

// PickCountsByCard returns how often each card has been picked, most picked
// first.
func (s *Store) PickCountsByCard() (map[string]int64, error) {
	if s == nil {
		return nil, nil
	}

	rows, err := s.db.conn.Query(
		"SELECT card_name, COUNT(*) FROM picks GROUP BY card_name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[name] = count
	}

	return counts, rows.Err()
}

// PickRecord is one row of pick history.
type PickRecord struct {
	CardName   string
	Cost       int
	ShopIndex  int
	Confidence float64
	Strategy   string
	PickedAt   time.Time
}

// RecentPicks returns up to limit picks, newest first.
func (s *Store) RecentPicks(limit int) ([]PickRecord, error) {
	if s == nil {
		return nil, nil
	}

	rows, err := s.db.conn.Query(`
		SELECT card_name, cost, shop_index, confidence, strategy, picked_at
		FROM picks ORDER BY picked_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []PickRecord
	for rows.Next() {
		var p PickRecord
		if err := rows.Scan(&p.CardName, &p.Cost, &p.ShopIndex, &p.Confidence, &p.Strategy, &p.PickedAt); err != nil {
			return nil, err
		}
		picks = append(picks, p)
	}

	return picks, rows.Err()
}
