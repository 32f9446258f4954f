package server

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/tobagin/draughts-core/pkg/protocol"
)

// CompletedGame is the durable record of a finished room, persisted for
// later review. Grounded on hailam-chessplay's internal/storage.Storage
// (GameResult/GameStats), adapted from a single local player's win/loss
// counters to a relayed two-player game's full move list.
type CompletedGame struct {
	RoomCode   string          `json:"room_code"`
	VariantID  string          `json:"variant_id"`
	Moves      []protocol.Move `json:"moves"`
	Result     protocol.Result `json:"result"`
	Reason     protocol.Reason `json:"reason"`
	StartedAt  time.Time       `json:"started_at"`
	EndedAt    time.Time       `json:"ended_at"`
}

// ServerStats is the durable, process-wide counters the relay tracks.
type ServerStats struct {
	ConnectionsEver     int64 `json:"connections_ever"`
	PeakConcurrentGames int64 `json:"peak_concurrent_games"`
	GamesCompleted      int64 `json:"games_completed"`
}

const statsKey = "stats"

// Store wraps BadgerDB for the relay server's durable hooks: completed games
// and the running process-wide counters. Every method here is best-effort:
// callers log a returned error and continue, never abort game flow over it.
type Store struct {
	db *badger.DB
}

// NewStore opens (or creates) a Badger database at dir.
func NewStore(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveCompletedGame persists a finished room's full move list and outcome.
func (s *Store) SaveCompletedGame(g CompletedGame) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	key := "game:" + g.RoomCode + ":" + g.EndedAt.Format(time.RFC3339Nano)

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	}); err != nil {
		return err
	}
	return s.bumpGamesCompleted()
}

// LoadStats returns the durable counters, zero-valued if never written.
func (s *Store) LoadStats() (ServerStats, error) {
	var stats ServerStats
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(statsKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stats)
		})
	})
	return stats, err
}

func (s *Store) saveStats(stats ServerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(statsKey), data)
	})
}

// IncrConnectionsEver bumps the durable total-connections-ever counter.
func (s *Store) IncrConnectionsEver() error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.ConnectionsEver++
	return s.saveStats(stats)
}

// RecordPeakConcurrentGames raises the durable peak if current exceeds it.
func (s *Store) RecordPeakConcurrentGames(current int64) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	if current > stats.PeakConcurrentGames {
		stats.PeakConcurrentGames = current
		return s.saveStats(stats)
	}
	return nil
}

func (s *Store) bumpGamesCompleted() error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.GamesCompleted++
	return s.saveStats(stats)
}
