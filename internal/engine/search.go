package engine

import (
	"math"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/rs/zerolog/log"
)

// WinScore is returned for a side left without a legal move.
const WinScore = 1000.0

// Successor is one candidate position together with the move that produced it.
type Successor struct {
	Board *model.Board
	Move  model.Move
}

// Successors expands every legal move of side on board into an independent copy.
func Successors(board *model.Board, side model.Side) []Successor {
	successors := []Successor{}
	for _, piece := range board.Pieces(side) {
		for _, move := range board.ValidMoves(piece) {
			next := board.Clone()
			next.Move(next.Piece(piece.Row, piece.Col), move.To.Row, move.To.Col)
			next.Remove(move.Captures...)
			successors = append(successors, Successor{Board: next, Move: move})
		}
	}
	return successors
}

type Result struct {
	Score float64
	Board *model.Board
	Move  model.Move
}

type Stats struct {
	Nodes  int
	Leaves int
	Cuts   int
}

func sideToMove(maximizing bool) model.Side {
	if maximizing {
		return model.White
	}
	return model.Red
}

func noMoveScore(maximizing bool) float64 {
	if maximizing {
		return -WinScore
	}
	return WinScore
}

// Search runs minimax with alpha-beta pruning. maximizing means White is to
// move. Ties keep the first successor in enumeration order.
func Search(board *model.Board, depth int, alpha, beta float64, maximizing bool, strategy Strategy) Result {
	var stats Stats
	return search(Successor{Board: board}, depth, alpha, beta, maximizing, strategy, &stats)
}

func search(node Successor, depth int, alpha, beta float64, maximizing bool, strategy Strategy, stats *Stats) Result {
	stats.Nodes++
	if depth == 0 || node.Board.Winner() != model.NoWinner {
		stats.Leaves++
		return Result{Score: Evaluate(node.Board, node.Move, strategy), Board: node.Board, Move: node.Move}
	}

	successors := Successors(node.Board, sideToMove(maximizing))
	if len(successors) == 0 {
		stats.Leaves++
		return Result{Score: noMoveScore(maximizing), Board: node.Board, Move: node.Move}
	}

	var best Result
	for i, child := range successors {
		score := search(child, depth-1, alpha, beta, !maximizing, strategy, stats).Score
		if maximizing {
			if i == 0 || score > best.Score {
				best = Result{Score: score, Board: child.Board, Move: child.Move}
			}
			alpha = math.Max(alpha, score)
		} else {
			if i == 0 || score < best.Score {
				best = Result{Score: score, Board: child.Board, Move: child.Move}
			}
			beta = math.Min(beta, score)
		}
		if beta <= alpha {
			stats.Cuts++
			break
		}
	}
	return best
}

// Minimax is the exhaustive search without pruning, with the same tie policy as Search.
func Minimax(board *model.Board, depth int, maximizing bool, strategy Strategy) Result {
	return minimax(Successor{Board: board}, depth, maximizing, strategy)
}

func minimax(node Successor, depth int, maximizing bool, strategy Strategy) Result {
	if depth == 0 || node.Board.Winner() != model.NoWinner {
		return Result{Score: Evaluate(node.Board, node.Move, strategy), Board: node.Board, Move: node.Move}
	}
	successors := Successors(node.Board, sideToMove(maximizing))
	if len(successors) == 0 {
		return Result{Score: noMoveScore(maximizing), Board: node.Board, Move: node.Move}
	}

	var best Result
	for i, child := range successors {
		score := minimax(child, depth-1, !maximizing, strategy).Score
		better := score > best.Score
		if !maximizing {
			better = score < best.Score
		}
		if i == 0 || better {
			best = Result{Score: score, Board: child.Board, Move: child.Move}
		}
	}
	return best
}

// Engine is the caller-facing search configuration.
type Engine struct {
	Depth    int
	Strategy Strategy
}

func New(depth int, strategy Strategy) *Engine {
	return &Engine{Depth: depth, Strategy: strategy}
}

// BestMove searches for side from the full window. ok is false when side has
// no legal move or board is already decided.
func (e *Engine) BestMove(board *model.Board, side model.Side) (Result, bool) {
	start := time.Now()
	var stats Stats
	maximizing := side == model.White
	result := search(Successor{Board: board}, e.Depth, math.Inf(-1), math.Inf(1), maximizing, e.Strategy, &stats)

	log.Debug().
		Str("side", string(side)).
		Str("strategy", e.Strategy.String()).
		Int("depth", e.Depth).
		Int("nodes", stats.Nodes).
		Int("leaves", stats.Leaves).
		Int("cuts", stats.Cuts).
		Float64("score", result.Score).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")

	if result.Board == board {
		return result, false
	}
	return result, true
}
