// Package player drives one networked game: it alternates between searching
// for our move and waiting for the opponent's, keeping a local board in step
// with the server.
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hailam/gothello/internal/board"
	"github.com/hailam/gothello/internal/engine"
	"github.com/hailam/gothello/internal/storage"
)

// Client is the server connection a Player talks to.
type Client interface {
	Side() board.Color
	SendMove(ctx context.Context, m board.Move) (bool, error)
	ReceiveMove(ctx context.Context) (board.Move, bool, error)
	Winner() board.Color
	MyTime() (time.Duration, bool)
}

// Recorder persists finished games.
type Recorder interface {
	RecordGame(rec storage.GameRecord) error
}

// Result describes a finished game.
type Result struct {
	Winner   board.Color // Empty if the server never named one
	Side     board.Color
	Moves    []board.Move
	Duration time.Duration
}

// Won reports whether we won.
func (r Result) Won() bool { return r.Winner != board.Empty && r.Winner == r.Side }

// Player plays one game for Client.Side().
type Player struct {
	Board  *board.Board
	Engine *engine.Engine
	Client Client
	Depth  int

	Recorder Recorder // optional
	Opponent string   // recorded with the game
}

// New returns a player with a fresh board.
func New(eng *engine.Engine, client Client, depth int) *Player {
	return &Player{
		Board:  board.NewBoard(),
		Engine: eng,
		Client: client,
		Depth:  depth,
	}
}

// Play runs the game to completion. Black moves first; after that the board's
// side to move says whose turn it is.
func (p *Player) Play(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{Side: p.Client.Side()}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var (
			cont bool
			err  error
		)
		if p.Board.SideToMove == res.Side {
			cont, err = p.makeMove(ctx, &res)
		} else {
			cont, err = p.receiveMove(ctx, &res)
		}
		if err != nil {
			res.Duration = time.Since(start)
			return res, err
		}
		if !cont {
			break
		}
	}

	res.Winner = p.Client.Winner()
	res.Duration = time.Since(start)
	log.Info().
		Str("side", res.Side.String()).
		Str("winner", res.Winner.String()).
		Int("moves", len(res.Moves)).
		Dur("duration", res.Duration).
		Msg("game-over")

	if p.Recorder != nil {
		if err := p.Recorder.RecordGame(p.record(res, start)); err != nil {
			log.Err(err).Msg("record-game-failed")
		}
	}
	return res, nil
}

func (p *Player) makeMove(ctx context.Context, res *Result) (bool, error) {
	m := p.think()
	p.Board.TryMove(m)
	res.Moves = append(res.Moves, m)
	log.Info().Str("me", m.String()).Msg("move")

	cont, err := p.Client.SendMove(ctx, m)
	if err != nil {
		return false, fmt.Errorf("send %s: %w", m, err)
	}
	return cont, nil
}

func (p *Player) receiveMove(ctx context.Context, res *Result) (bool, error) {
	m, cont, err := p.Client.ReceiveMove(ctx)
	if err != nil {
		return false, fmt.Errorf("receive move: %w", err)
	}
	if m.IsPlacement() && !p.Board.IsLegal(m) {
		log.Warn().Str("opp", m.String()).Msg("opponent-move-illegal-locally")
	}
	p.Board.TryMove(m)
	res.Moves = append(res.Moves, m)
	log.Info().Str("opp", m.String()).Bool("last", !cont).Msg("move")
	return cont, nil
}

// think searches to the configured depth, or deepens within our clock when
// the server runs one.
func (p *Player) think() board.Move {
	if remaining, ok := p.Client.MyTime(); ok {
		return p.Engine.SearchWithLimits(p.Board, engine.SearchLimits{
			Depth:     p.Depth,
			Remaining: remaining,
		})
	}
	return p.Engine.FindBestMove(p.Board, p.Depth)
}

func (p *Player) record(res Result, start time.Time) storage.GameRecord {
	moves := make([]string, len(res.Moves))
	for i, m := range res.Moves {
		moves[i] = m.String()
	}
	var winner string
	if res.Winner != board.Empty {
		winner = res.Winner.String()
	}
	return storage.GameRecord{
		Mode:       storage.ModeNetwork,
		Side:       res.Side.String(),
		Opponent:   p.Opponent,
		Moves:      moves,
		Winner:     winner,
		FinalBoard: p.Board.String(),
		Duration:   res.Duration,
		PlayedAt:   start,
	}
}
