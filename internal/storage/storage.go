package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
	gamePrefix     = "game/"
)

// Difficulty represents AI difficulty level
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// String returns the difficulty name used in stats keys.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "medium"
	}
}

// PlayerColor represents which color the human plays on the desktop board
type PlayerColor int

const (
	ColorBlack PlayerColor = iota
	ColorWhite
)

// GameMode records where a game was played.
type GameMode string

const (
	ModeDesktop GameMode = "desktop"
	ModeNetwork GameMode = "network"
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username     string      `json:"username"`
	Difficulty   Difficulty  `json:"difficulty"`
	PlayerColor  PlayerColor `json:"player_color"`
	ShowHints    bool        `json:"show_hints"`
	SoundEnabled bool        `json:"sound_enabled"`
	LastPlayed   time.Time   `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:     "Player",
		Difficulty:   DifficultyMedium,
		PlayerColor:  ColorBlack,
		ShowHints:    true,
		SoundEnabled: true,
		LastPlayed:   time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByMode     map[string]int `json:"wins_by_mode"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByMode: make(map[string]int),
	}
}

// GameRecord is one finished game. Colors are "black" or "white"; an empty
// Winner is a draw.
type GameRecord struct {
	Mode       GameMode      `json:"mode"`
	Side       string        `json:"side"`
	Opponent   string        `json:"opponent"`
	Moves      []string      `json:"moves"`
	Winner     string        `json:"winner"`
	FinalBoard string        `json:"final_board"`
	Duration   time.Duration `json:"duration"`
	PlayedAt   time.Time     `json:"played_at"`
}

// Won reports whether our side won.
func (r GameRecord) Won() bool { return r.Winner != "" && r.Winner == r.Side }

// Draw reports whether the game was drawn.
func (r GameRecord) Draw() bool { return r.Winner == "" }

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the default data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dir, err)
	}
	return &Storage{db: db}, nil
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(badgerLogger{})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open in-memory: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, keyPreferences, prefs)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, keyPreferences, prefs)
	})
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, keyStats, stats)
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, keyStats, stats)
	})
	return stats, err
}

// RecordGame stores a finished game and updates the statistics in the same
// transaction.
func (s *Storage) RecordGame(rec GameRecord) error {
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		stats := NewGameStats()
		if err := getJSON(txn, keyStats, stats); err != nil {
			return err
		}
		if stats.WinsByMode == nil {
			stats.WinsByMode = make(map[string]int)
		}

		stats.GamesPlayed++
		stats.TotalPlayTime += rec.Duration

		switch {
		case rec.Draw():
			stats.Draws++
			stats.CurrentStreak = 0
		case rec.Won():
			stats.Wins++
			stats.CurrentStreak++
			if stats.CurrentStreak > stats.LongestWinStrk {
				stats.LongestWinStrk = stats.CurrentStreak
			}
			stats.WinsByMode[string(rec.Mode)]++
		default:
			stats.Losses++
			stats.CurrentStreak = 0
		}

		if err := setJSON(txn, gameKey(rec.PlayedAt), rec); err != nil {
			return err
		}
		return setJSON(txn, keyStats, stats)
	})
	if err != nil {
		return fmt.Errorf("storage: record game: %w", err)
	}

	log.Debug().Str("mode", string(rec.Mode)).Str("winner", rec.Winner).
		Int("moves", len(rec.Moves)).Msg("game-recorded")
	return nil
}

// ListGames returns up to limit games, newest first. A limit <= 0 returns
// every game.
func (s *Storage) ListGames(limit int) ([]GameRecord, error) {
	var games []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	games = lo.Reverse(games)
	if limit > 0 {
		games = lo.Subset(games, 0, uint(limit))
	}
	return games, nil
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// gameKey orders games chronologically under the game/ prefix.
func gameKey(t time.Time) string {
	return fmt.Sprintf("%s%020d", gamePrefix, t.UnixNano())
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set([]byte(key), data)
}

// getJSON decodes key into v, leaving v untouched if the key is missing.
func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// badgerLogger sends badger's internal logging through zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(f string, args ...any) {
	log.Error().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(f, args...)))
}

func (badgerLogger) Warningf(f string, args ...any) {
	log.Warn().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(f, args...)))
}

func (badgerLogger) Infof(f string, args ...any) {
	log.Debug().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(f, args...)))
}

func (badgerLogger) Debugf(f string, args ...any) {
	log.Trace().Str("component", "badger").Msg(strings.TrimSpace(fmt.Sprintf(f, args...)))
}
