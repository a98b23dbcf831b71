package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run is the record of one finished round.
type Run struct {
	ID            int64
	Biome         string
	LevelsCleared int
	Coins         int
	Won           bool // every level of the set cleared
	CreatedAt     time.Time
}

// RecordRun stores a finished round and returns its ID.
func (s *Store) RecordRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (biome, levels_cleared, coins, won) VALUES (?, ?, ?, ?)",
		r.Biome, r.LevelsCleared, r.Coins, r.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs of a biome: most levels cleared, then most coins.
func (s *Store) TopRuns(biome string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, biome, levels_cleared, coins, won, created_at
		 FROM runs
		 WHERE biome = ?
		 ORDER BY levels_cleared DESC, coins DESC, id ASC
		 LIMIT ?`,
		biome, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Biome, &r.LevelsCleared, &r.Coins, &r.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// ClearRuns deletes all runs of a biome.
func (s *Store) ClearRuns(biome string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE biome = ?", biome); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// BiomeStats contains aggregated statistics for a biome.
type BiomeStats struct {
	Biome      string
	Runs       int
	Wins       int
	BestLevels int
	TotalCoins int64
	LastPlayed time.Time
}

// GetBiomeStats aggregates the runs of one biome.
func (s *Store) GetBiomeStats(biome string) (*BiomeStats, error) {
	stats := &BiomeStats{Biome: biome}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(levels_cleared), 0), COALESCE(SUM(coins), 0)
		 FROM runs WHERE biome = ?`,
		biome,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestLevels, &stats.TotalCoins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get biome stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE biome = ? ORDER BY created_at DESC LIMIT 1`,
		biome,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllBiomeStats aggregates runs for every biome that has been played.
func (s *Store) GetAllBiomeStats() (map[string]*BiomeStats, error) {
	rows, err := s.db.Query(
		`SELECT biome, COUNT(*), SUM(won), MAX(levels_cleared), SUM(coins), MAX(created_at)
		 FROM runs
		 GROUP BY biome`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all biome stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*BiomeStats)
	for rows.Next() {
		var st BiomeStats
		var lastPlayed any
		if err := rows.Scan(&st.Biome, &st.Runs, &st.Wins, &st.BestLevels, &st.TotalCoins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Biome] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
