package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/checkers-backend/internal/model"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects the evaluation function applied at the search horizon.
type Strategy int

const (
	Basic Strategy = iota
	Intermediate
	Advanced
)

var strategyNames = map[Strategy]string{
	Basic:        "basic",
	Intermediate: "intermediate",
	Advanced:     "advanced",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStrategy accepts a difficulty name such as "basic" or "Intermediate Level".
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), " level")
	switch normalized {
	case "basic":
		return Basic, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced", "advance":
		return Advanced, nil
	}
	return Basic, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

type evaluator func(board *model.Board, last model.Move) float64

var evaluators = map[Strategy]evaluator{
	Basic:        evaluateBasic,
	Intermediate: evaluateIntermediate,
	Advanced:     evaluateAdvanced,
}

// Evaluate scores board from White's side. last is the move that produced the
// board; the zero Move is valid and carries no captures.
func Evaluate(board *model.Board, last model.Move, strategy Strategy) float64 {
	eval, ok := evaluators[strategy]
	if !ok {
		panic(fmt.Sprintf("engine: %v", strategy))
	}
	return eval(board, last)
}

func evaluateBasic(board *model.Board, _ model.Move) float64 {
	return float64(board.Left(model.White) - board.Left(model.Red))
}

func evaluateIntermediate(board *model.Board, last model.Move) float64 {
	kings := float64(board.Kings(model.White) - board.Kings(model.Red))
	return evaluateBasic(board, last) + kings + chainBonus(last)
}

func evaluateAdvanced(board *model.Board, last model.Move) float64 {
	kings := float64(board.Kings(model.White))*0.5 - float64(board.Kings(model.Red))*0.5
	return evaluateBasic(board, last) + kings + chainBonus(last)
}

func chainBonus(last model.Move) float64 {
	switch n := len(last.Captures); {
	case n >= 2:
		return 2
	case n == 1:
		return 1
	default:
		return 0
	}
}
