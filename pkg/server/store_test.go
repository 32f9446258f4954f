package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tobagin/draughts-core/pkg/protocol"
)

func TestStoreSaveCompletedGameAndStats(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.IncrConnectionsEver())
	assert.NoError(t, store.IncrConnectionsEver())

	assert.NoError(t, store.RecordPeakConcurrentGames(3))
	assert.NoError(t, store.RecordPeakConcurrentGames(1)) // must not lower the peak

	game := CompletedGame{
		RoomCode:  "ABC123",
		VariantID: "american",
		Moves:     []protocol.Move{{PieceID: 1, FromRow: 5, FromCol: 1, ToRow: 4, ToCol: 0}},
		Result:    protocol.ResultRedWins,
		Reason:    protocol.ReasonResignation,
		StartedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndedAt:   time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC),
	}
	assert.NoError(t, store.SaveCompletedGame(game))

	stats, err := store.LoadStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.ConnectionsEver)
	assert.Equal(t, int64(3), stats.PeakConcurrentGames)
	assert.Equal(t, int64(1), stats.GamesCompleted)
}

func TestStoreLoadStatsEmptyDatabase(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	stats, err := store.LoadStats()
	assert.NoError(t, err)
	assert.Equal(t, ServerStats{}, stats)
}
