package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		is := is.New(t)
		prefs := DefaultPreferences()
		is.Equal(prefs.Username, "Player")
		is.Equal(prefs.Difficulty, DifficultyMedium)
		is.Equal(prefs.PlayerColor, ColorBlack)
		is.True(prefs.ShowHints)
		is.True(prefs.SoundEnabled)
	})

	t.Run("NewGameStats", func(t *testing.T) {
		is := is.New(t)
		stats := NewGameStats()
		is.Equal(stats.GamesPlayed, 0)
		is.Equal(stats.GetWinRate(), 0.0)
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			Wins:        5,
			Losses:      3,
			Draws:       2,
		}
		if rate := stats.GetWinRate(); rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	is := is.New(t)
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	is.NoErr(err)
	is.Equal(prefs.Username, "Player")

	prefs.Username = "bart"
	prefs.Difficulty = DifficultyHard
	prefs.PlayerColor = ColorWhite
	is.NoErr(s.SavePreferences(prefs))

	got, err := s.LoadPreferences()
	is.NoErr(err)
	is.Equal(got.Username, "bart")
	is.Equal(got.Difficulty, DifficultyHard)
	is.Equal(got.PlayerColor, ColorWhite)
}

func TestFirstLaunch(t *testing.T) {
	is := is.New(t)
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	is.NoErr(err)
	is.True(first)

	is.NoErr(s.MarkFirstLaunchComplete())
	first, err = s.IsFirstLaunch()
	is.NoErr(err)
	is.True(!first)
}

func TestRecordGameUpdatesStats(t *testing.T) {
	is := is.New(t)
	s := openTest(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	games := []GameRecord{
		{Mode: ModeNetwork, Side: "black", Winner: "black", Moves: []string{"c3", "b2"}, Duration: time.Minute},
		{Mode: ModeNetwork, Side: "black", Winner: "black", Duration: time.Minute},
		{Mode: ModeDesktop, Side: "white", Winner: "black", Duration: time.Minute},
		{Mode: ModeDesktop, Side: "white", Winner: "", Duration: time.Minute},
		{Mode: ModeDesktop, Side: "white", Winner: "white", Duration: time.Minute},
	}
	for i, g := range games {
		g.PlayedAt = start.Add(time.Duration(i) * time.Second)
		is.NoErr(s.RecordGame(g))
	}

	stats, err := s.LoadStats()
	is.NoErr(err)
	is.Equal(stats.GamesPlayed, 5)
	is.Equal(stats.Wins, 3)
	is.Equal(stats.Losses, 1)
	is.Equal(stats.Draws, 1)
	is.Equal(stats.LongestWinStrk, 2)
	is.Equal(stats.CurrentStreak, 1)
	is.Equal(stats.WinsByMode["network"], 2)
	is.Equal(stats.WinsByMode["desktop"], 1)
	is.Equal(stats.TotalPlayTime, 5*time.Minute)
}

func TestListGamesNewestFirst(t *testing.T) {
	s := openTest(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := range 4 {
		require.NoError(t, s.RecordGame(GameRecord{
			Mode:     ModeNetwork,
			Side:     "black",
			Opponent: "server-" + string(rune('a'+i)),
			PlayedAt: start.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := s.ListGames(0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "server-d", all[0].Opponent)
	require.Equal(t, "server-a", all[3].Opponent)

	recent, err := s.ListGames(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "server-d", recent[0].Opponent)
	require.Equal(t, "server-c", recent[1].Opponent)
	require.True(t, recent[0].PlayedAt.Equal(start.Add(3*time.Hour)))
}

func TestOpenOnDisk(t *testing.T) {
	is := is.New(t)
	dir := filepath.Join(t.TempDir(), "db")

	s, err := Open(dir)
	is.NoErr(err)
	is.NoErr(s.RecordGame(GameRecord{Mode: ModeDesktop, Side: "black", Winner: "white"}))
	is.NoErr(s.Close())

	s, err = Open(dir)
	is.NoErr(err)
	defer s.Close()
	games, err := s.ListGames(0)
	is.NoErr(err)
	is.Equal(len(games), 1)
	is.Equal(games[0].Winner, "white")
}

func TestDataPaths(t *testing.T) {
	t.Setenv("GOTHELLO_DATA_DIR", filepath.Join(t.TempDir(), "data"))

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if filepath.Dir(dbDir) != dataDir {
		t.Errorf("Database dir %s is not inside %s", dbDir, dataDir)
	}
}
