// Package storage persists scores. Store keeps them in a local SQLite file
// through the pure-Go modernc.org/sqlite driver; RedisStore keeps them in a
// shared Redis so several hosts can report one high score.
package storage

import "time"

// Outcomes recorded with a finished run.
const (
	OutcomeGameOver = "game_over"
	OutcomeWin      = "win"
)

// ScoreEntry represents a single recorded run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Outcome   string
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	Wins       int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Backend is implemented by Store and RedisStore.
type Backend interface {
	// HighScore returns the best score for the game, 0 if none is stored.
	HighScore(gameID string) (int, error)
	// SetHighScore raises the stored high score. A lower value is ignored.
	SetHighScore(gameID string, score int) error
	// SaveScore records a finished run and returns its ID.
	SaveScore(gameID string, score int, outcome string) (int64, error)
	// TopScores returns up to limit runs, best first.
	TopScores(gameID string, limit int) ([]ScoreEntry, error)
	// Stats aggregates every recorded run of the game.
	Stats(gameID string) (*GameStats, error)
	// ClearScores deletes the runs and the high score of the game.
	ClearScores(gameID string) error
	Close() error
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*RedisStore)(nil)
)

// Board binds a backend to one game. It is the high score store a game
// reads on reset and writes whenever the best score is exceeded.
type Board struct {
	backend Backend
	gameID  string
}

// NewBoard returns a board for gameID on backend.
func NewBoard(backend Backend, gameID string) *Board {
	return &Board{backend: backend, gameID: gameID}
}

// GameID returns the game the board is bound to.
func (b *Board) GameID() string {
	return b.gameID
}

// LoadHighScore returns the stored high score.
func (b *Board) LoadHighScore() (int, error) {
	return b.backend.HighScore(b.gameID)
}

// SaveHighScore raises the stored high score to score.
func (b *Board) SaveHighScore(score int) error {
	return b.backend.SetHighScore(b.gameID, score)
}

// RecordRun stores a finished run.
func (b *Board) RecordRun(score int, outcome string) error {
	_, err := b.backend.SaveScore(b.gameID, score, outcome)
	return err
}

// parseTime accepts the forms SQLite hands back for DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
