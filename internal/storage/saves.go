package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSlotNotFound is returned when a save slot does not exist.
var ErrSlotNotFound = errors.New("storage: save slot not found")

// DefaultSlot is the slot used by the quick save keys.
const DefaultSlot = "quick"

// SaveSlot is one stored round. Payload is the encoded game state.
type SaveSlot struct {
	ID        string
	Biome     string
	Slot      string
	Level     int // 0-based level index
	Payload   []byte
	CreatedAt time.Time
}

// SaveSlot writes payload into the named slot, replacing what was there.
// Every write gets a fresh ID, which is returned.
func (s *Store) SaveSlot(biome, slot string, level int, payload []byte) (string, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM saves WHERE biome = ? AND slot = ?", biome, slot); err != nil {
		return "", fmt.Errorf("storage: cannot replace save: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO saves (id, biome, slot, level, payload) VALUES (?, ?, ?, ?, ?)",
		id, biome, slot, level, payload,
	); err != nil {
		return "", fmt.Errorf("storage: cannot save slot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit save: %w", err)
	}
	return id, nil
}

// LoadSlot reads a slot with its payload.
func (s *Store) LoadSlot(biome, slot string) (*SaveSlot, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	var e SaveSlot
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, biome, slot, level, payload, created_at
		 FROM saves
		 WHERE biome = ? AND slot = ?`,
		biome, slot,
	).Scan(&e.ID, &e.Biome, &e.Slot, &e.Level, &e.Payload, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: %s/%s: %w", biome, slot, ErrSlotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// ListSlots returns the slots of a biome, newest first, without payloads.
// An empty biome lists every slot.
func (s *Store) ListSlots(biome string) ([]SaveSlot, error) {
	query := `SELECT id, biome, slot, level, created_at FROM saves`
	args := []any{}
	if biome != "" {
		query += ` WHERE biome = ?`
		args = append(args, biome)
	}
	query += ` ORDER BY created_at DESC, slot ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var slots []SaveSlot
	for rows.Next() {
		var e SaveSlot
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Biome, &e.Slot, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		slots = append(slots, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// DeleteSlot removes a slot. Deleting a missing slot returns ErrSlotNotFound.
func (s *Store) DeleteSlot(biome, slot string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE biome = ? AND slot = ?", biome, slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: %s/%s: %w", biome, slot, ErrSlotNotFound)
	}
	return nil
}
