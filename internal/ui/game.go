package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/hailam/gothello/internal/board"
	"github.com/hailam/gothello/internal/engine"
	"github.com/hailam/gothello/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 860
	ScreenHeight = 600
	BoardSize    = 600
	PointSize    = BoardSize / board.Size
	PanelWidth   = ScreenWidth - BoardSize
)

// hintDepth is how far the Easy-mode hint engine looks past each move.
const hintDepth = 2

// Options configures a new desktop game.
type Options struct {
	DataDir     string             // database parent directory, empty for the platform default
	Seed        uint64             // 0 seeds the engines at random
	Difficulty  *engine.Difficulty // overrides the saved preference when set
	PlayerColor board.Color        // overrides the saved preference unless Empty
}

// Hint is the Easy-mode suggestion for the human.
type Hint struct {
	Move  board.Move
	Value int
}

// Game implements ebiten.Game: one human against the engine on a 5x5 board.
type Game struct {
	opts Options

	// Core game state
	board     *board.Board
	history   []string
	lastMove  board.Move
	legal     []board.Move
	hover     board.Move
	started   time.Time
	gameOver  bool
	winner    board.Color
	resultMsg string

	// Settings
	difficulty  engine.Difficulty
	playerColor board.Color
	username    string
	showHints   bool

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager

	// Modals
	settingsModal *SettingsModal
	welcomeScreen *WelcomeScreen

	// Engine. One search is in flight at a time; its answer arrives on
	// aiReply, a channel owned by that search.
	engine  *engine.Engine
	aiReply chan board.Move

	// Easy-mode hints, searched on a separate engine.
	hintEngine *engine.Engine
	hint       *Hint
	hintReply  chan Hint

	// HiDPI scaling
	scale float64
}

// NewGame creates the desktop game, loading preferences from storage.
func NewGame(opts Options) *Game {
	g := &Game{
		opts:        opts,
		board:       board.NewBoard(),
		difficulty:  engine.Medium,
		playerColor: board.Black,
		username:    "Player",
		showHints:   true,
		renderer:    NewRenderer(BoardSize, PointSize),
		input:       NewInputHandler(),
		feedback:    NewFeedbackManager(),
		started:     time.Now(),
		scale:       1.0,
	}
	g.engine = g.newEngine()
	g.hintEngine = g.newEngine()

	var err error
	g.storage, err = openStorage(opts.DataDir)
	if err != nil {
		log.Warn().Err(err).Msg("storage-unavailable")
	}

	g.loadPreferences()
	if opts.Difficulty != nil {
		g.difficulty = *opts.Difficulty
	}
	if opts.PlayerColor != board.Empty {
		g.playerColor = opts.PlayerColor
	}

	g.panel = NewPanel(g)
	g.settingsModal = NewSettingsModal()
	g.welcomeScreen = NewWelcomeScreen()

	g.checkFirstLaunch()
	g.startTurn()
	return g
}

func openStorage(dataDir string) (*storage.Storage, error) {
	if dataDir == "" {
		return storage.NewStorage()
	}
	return storage.Open(filepath.Join(dataDir, "db"))
}

func (g *Game) newEngine() *engine.Engine {
	if g.opts.Seed != 0 {
		return engine.NewSeededEngine(g.opts.Seed)
	}
	return engine.NewEngine()
}

// loadPreferences loads user preferences and stats from storage.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		g.prefs = storage.DefaultPreferences()
		g.stats = storage.NewGameStats()
		return
	}

	var err error
	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Warn().Err(err).Msg("load-preferences")
		g.prefs = storage.DefaultPreferences()
	}
	g.stats, err = g.storage.LoadStats()
	if err != nil {
		log.Warn().Err(err).Msg("load-stats")
		g.stats = storage.NewGameStats()
	}

	g.username = g.prefs.Username
	g.difficulty = engine.Difficulty(g.prefs.Difficulty)
	g.showHints = g.prefs.ShowHints
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
	if g.prefs.PlayerColor == storage.ColorWhite {
		g.playerColor = board.White
	} else {
		g.playerColor = board.Black
	}
}

// savePreferences writes the current settings to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	g.prefs.Username = g.username
	g.prefs.Difficulty = storage.Difficulty(g.difficulty)
	g.prefs.ShowHints = g.showHints
	g.prefs.SoundEnabled = g.feedback.Audio().IsEnabled()
	g.prefs.PlayerColor = storage.ColorBlack
	if g.playerColor == board.White {
		g.prefs.PlayerColor = storage.ColorWhite
	}
	g.prefs.LastPlayed = time.Now()

	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Warn().Err(err).Msg("save-preferences")
	}
}

// checkFirstLaunch shows the welcome screen on first launch.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}
	first, err := g.storage.IsFirstLaunch()
	if err != nil {
		log.Warn().Err(err).Msg("check-first-launch")
		return
	}
	if !first {
		return
	}
	g.welcomeScreen.Show(func(name string, color storage.PlayerColor) {
		g.username = name
		if err := g.storage.MarkFirstLaunchComplete(); err != nil {
			log.Warn().Err(err).Msg("mark-first-launch")
		}
		c := board.Black
		if color == storage.ColorWhite {
			c = board.White
		}
		if c != g.playerColor {
			g.SetPlayerColor(c)
		}
		g.savePreferences()
	})
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	if g.welcomeScreen.IsVisible() {
		g.welcomeScreen.Update(g.input)
		g.updateCursor()
		return nil
	}
	if g.settingsModal.IsVisible() {
		g.settingsModal.Update(g.input)
		g.updateCursor()
		return nil
	}

	g.handleShortcut()
	if !g.panel.HandleInput(g.input) {
		g.handleBoardInput()
	}

	g.checkAIMove()
	g.checkHint()
	g.startHint()
	g.updateCursor()
	return nil
}

func (g *Game) handleShortcut() {
	switch g.input.Shortcut() {
	case ShortcutPass:
		if g.CanPass() {
			g.PassAction()
		}
	case ShortcutNewGame:
		g.NewGameAction()
	case ShortcutToggleHints:
		g.showHints = !g.showHints
		g.savePreferences()
	}
}

// updateCursor shows a pointer over buttons and playable points.
func (g *Game) updateCursor() {
	var hovered bool
	switch {
	case g.welcomeScreen.IsVisible():
		hovered = g.welcomeScreen.AnyButtonHovered()
	case g.settingsModal.IsVisible():
		hovered = g.settingsModal.AnyButtonHovered()
	default:
		hovered = g.panel.AnyButtonHovered() || g.hover != board.NoMove
	}
	if hovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen)
	if g.humanToMove() && g.showHints {
		g.renderer.DrawLegalMoves(screen, g.legal)
	}
	g.renderer.DrawStones(screen, g.board)
	g.renderer.DrawLastMove(screen, g.lastMove)
	if g.hover != board.NoMove {
		g.renderer.DrawGhost(screen, g.hover, g.playerColor, 1)
	}
	if g.hint != nil && g.hintsActive() {
		g.renderer.DrawHint(screen, g.hint.Move)
	}
	g.feedback.DrawBoardEffects(screen, g.renderer)
	g.feedback.DrawToasts(screen)

	g.panel.Draw(screen)

	g.settingsModal.Draw(screen)
	g.welcomeScreen.Draw(screen)
}

// Layout returns the screen size in device pixels. Width follows the
// panel's collapsed state.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = max(ebiten.Monitor().DeviceScaleFactor(), 1.0)
	UIScale = g.scale

	width := ScreenWidth
	if g.panel != nil && g.panel.Collapsed() {
		width = BoardSize + CollapsedWidth
	}
	return int(float64(width) * g.scale), int(float64(ScreenHeight) * g.scale)
}

func (g *Game) humanToMove() bool {
	return !g.gameOver && g.aiReply == nil && g.board.SideToMove == g.playerColor
}

// handleBoardInput tracks the hovered point and plays clicked points.
func (g *Game) handleBoardInput() {
	mx, my := g.input.MousePosition()
	m, onBoard := g.renderer.ScreenToPoint(mx, my)

	g.hover = board.NoMove
	if onBoard && g.humanToMove() && g.board.IsLegal(m) {
		g.hover = m
	}

	if !onBoard || !g.input.IsLeftJustPressed() || g.gameOver {
		return
	}
	if !g.humanToMove() {
		g.feedback.OnIllegalMove(m, ReasonNotYourTurn)
		return
	}
	if !g.board.IsLegal(m) {
		reason := ReasonNoLiberties
		if g.board.At(m.Row(), m.Col()) != board.Empty {
			reason = ReasonOccupied
		}
		g.feedback.OnIllegalMove(m, reason)
		return
	}
	g.hover = board.NoMove
	g.playMove(m)
}

// playMove applies m for the side to move and hands the turn over.
func (g *Game) playMove(m board.Move) {
	mover := g.board.SideToMove
	before := g.board.Grid()

	g.history = append(g.history, m.String())
	if g.board.TryMove(m) == board.GameOver {
		log.Debug().Str("side", mover.String()).Msg("second-pass")
		g.finishGame()
		return
	}
	g.lastMove = m

	if m.IsPass() {
		g.feedback.OnPass(mover)
	} else {
		g.feedback.OnMove(m, capturedStones(before, g.board.Grid()))
	}
	log.Debug().Str("side", mover.String()).Str("move", m.String()).
		Int("black", g.board.Count(board.Black)).Int("white", g.board.Count(board.White)).
		Msg("move")

	g.clearHint()
	g.startTurn()
}

// capturedStones lists the points emptied between two grids.
func capturedStones(before, after board.Grid) []Captured {
	var out []Captured
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if before[r][c] != board.Empty && after[r][c] == board.Empty {
				out = append(out, Captured{Point: board.NewMove(r, c), Stone: before[r][c]})
			}
		}
	}
	return out
}

// startTurn refreshes the human's legal points or sets the engine thinking.
func (g *Game) startTurn() {
	if g.gameOver {
		return
	}
	if g.board.SideToMove == g.playerColor {
		g.legal = g.board.LegalMoves()
		if len(g.legal) == 0 {
			g.feedback.toasts.Show("No legal points: press P to pass", ToastInfo, 3*time.Second)
		}
		return
	}
	g.legal = nil
	g.startAIThinking()
}

// startAIThinking searches a copy of the board in a goroutine.
func (g *Game) startAIThinking() {
	if g.aiReply != nil {
		return
	}
	reply := make(chan board.Move, 1)
	g.aiReply = reply

	// g.engine is idle while aiReply is nil.
	eng := g.engine
	eng.SetDifficulty(g.difficulty)
	b := g.board.Clone()
	log.Debug().Str("side", b.SideToMove.String()).Str("difficulty", eng.Difficulty().String()).Msg("engine-thinking")

	go func() {
		reply <- eng.Search(b)
	}()
}

// checkAIMove plays the engine's move once its search is done.
func (g *Game) checkAIMove() {
	if g.aiReply == nil {
		return
	}
	select {
	case m := <-g.aiReply:
		g.aiReply = nil
		g.playMove(m)
	default:
	}
}

func (g *Game) hintsActive() bool {
	return g.difficulty == engine.Easy && g.showHints && g.humanToMove()
}

// startHint runs the hint search when the human is to move on Easy.
func (g *Game) startHint() {
	if !g.hintsActive() || g.hint != nil || g.hintReply != nil || len(g.legal) == 0 {
		return
	}
	reply := make(chan Hint, 1)
	g.hintReply = reply

	eng := g.hintEngine
	b := g.board.Clone()
	go func() {
		info := eng.Analyze(b, hintDepth)
		reply <- Hint{Move: info.Move, Value: info.Value}
	}()
}

func (g *Game) checkHint() {
	if g.hintReply == nil {
		return
	}
	select {
	case h := <-g.hintReply:
		g.hintReply = nil
		g.hint = &h
		log.Debug().Str("move", h.Move.String()).Str("value", engine.ValueToString(h.Value)).Msg("hint")
	default:
	}
}

// clearHint drops the current hint. A hint search still running keeps its
// engine, so the next one gets a fresh engine.
func (g *Game) clearHint() {
	g.hint = nil
	if g.hintReply != nil {
		g.hintReply = nil
		g.hintEngine = g.newEngine()
	}
}

// finishGame ends the game after the second consecutive pass.
func (g *Game) finishGame() {
	g.gameOver = true
	g.legal = nil
	g.hover = board.NoMove
	g.clearHint()
	g.winner = g.board.Winner()

	switch g.winner {
	case board.Empty:
		g.resultMsg = fmt.Sprintf("Draw, %d all", g.board.Count(board.Black))
	case g.playerColor:
		g.resultMsg = fmt.Sprintf("You win %d-%d", g.board.Count(g.winner), g.board.Count(g.winner.Other()))
	default:
		g.resultMsg = fmt.Sprintf("Engine wins %d-%d", g.board.Count(g.winner), g.board.Count(g.winner.Other()))
	}
	g.feedback.OnGameOver(g.resultMsg)
	log.Info().Str("winner", g.winner.String()).Int("moves", len(g.history)).Msg("game-over")

	g.recordGame()
}

func (g *Game) recordGame() {
	if g.storage == nil {
		return
	}
	winner := ""
	if g.winner != board.Empty {
		winner = g.winner.String()
	}
	rec := storage.GameRecord{
		Mode:       storage.ModeDesktop,
		Side:       g.playerColor.String(),
		Opponent:   "engine-" + g.difficulty.String(),
		Moves:      append([]string(nil), g.history...),
		Winner:     winner,
		FinalBoard: g.board.String(),
		Duration:   time.Since(g.started),
		PlayedAt:   time.Now(),
	}
	if err := g.storage.RecordGame(rec); err != nil {
		log.Warn().Err(err).Msg("record-game")
		return
	}
	if stats, err := g.storage.LoadStats(); err == nil {
		g.stats = stats
	}
}

// NewGameAction starts a new game with the current settings.
func (g *Game) NewGameAction() {
	if g.aiReply != nil {
		// The abandoned search still owns the engine.
		g.aiReply = nil
		g.engine = g.newEngine()
	} else {
		g.engine.Clear()
	}
	g.clearHint()
	g.hintEngine.Clear()

	g.board = board.NewBoard()
	g.history = nil
	g.lastMove = board.NoMove
	g.hover = board.NoMove
	g.gameOver = false
	g.winner = board.Empty
	g.resultMsg = ""
	g.started = time.Now()
	g.feedback.Reset()

	log.Debug().Str("human", g.playerColor.String()).Str("difficulty", g.difficulty.String()).Msg("new-game")
	g.startTurn()
}

// PassAction passes for the human.
func (g *Game) PassAction() {
	if !g.CanPass() {
		return
	}
	g.hover = board.NoMove
	g.playMove(board.Pass)
}

// CanPass reports whether the human may pass now.
func (g *Game) CanPass() bool {
	return g.humanToMove()
}

// SetPlayerColor sets the human's side and starts a new game.
func (g *Game) SetPlayerColor(c board.Color) {
	if c == g.playerColor {
		return
	}
	g.playerColor = c
	g.savePreferences()
	g.NewGameAction()
}

// PlayerColor returns the color the human plays.
func (g *Game) PlayerColor() board.Color {
	return g.playerColor
}

// SetDifficulty sets the engine strength. A search already running keeps
// the old setting.
func (g *Game) SetDifficulty(d engine.Difficulty) {
	g.difficulty = d
	g.clearHint()
	g.savePreferences()
}

// Difficulty returns the engine strength.
func (g *Game) Difficulty() engine.Difficulty {
	return g.difficulty
}

// ShowSettings opens the settings modal.
func (g *Game) ShowSettings() {
	g.settingsModal.Show(g.prefs, func(prefs *storage.UserPreferences) {
		g.username = prefs.Username
		g.showHints = prefs.ShowHints
		g.feedback.Audio().SetEnabled(prefs.SoundEnabled)

		c := board.Black
		if prefs.PlayerColor == storage.ColorWhite {
			c = board.White
		}
		if c != g.playerColor {
			g.SetPlayerColor(c)
			return
		}
		g.savePreferences()
	})
}

// Board returns the current position.
func (g *Game) Board() *board.Board {
	return g.board
}

// MoveHistory returns the moves played so far in wire notation.
func (g *Game) MoveHistory() []string {
	return g.history
}

// GameOver returns true if the game is over.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// GameResult returns the result line of a finished game.
func (g *Game) GameResult() string {
	return g.resultMsg
}

// IsAIThinking returns true while the engine searches.
func (g *Game) IsAIThinking() bool {
	return g.aiReply != nil
}

// Username returns the player's name.
func (g *Game) Username() string {
	return g.username
}

// Stats returns the stored game statistics.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// Close releases the database.
func (g *Game) Close() {
	if g.storage != nil {
		if err := g.storage.Close(); err != nil {
			log.Warn().Err(err).Msg("close-storage")
		}
	}
}

// displayColor returns "Black" or "White".
func displayColor(c board.Color) string {
	switch c {
	case board.Black:
		return "Black"
	case board.White:
		return "White"
	}
	return "Nobody"
}
