package main

import (
	"fmt"
	"os"

	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/log2"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "checkers-selfplay",
		Usage: "Let two engines play a game of checkers in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "red", Usage: "strategy for red", Value: "basic"},
			&cli.StringFlag{Name: "white", Usage: "strategy for white", Value: "advanced"},
			&cli.IntFlag{Name: "depth", Aliases: []string{"d"}, Usage: "search depth in plies", Value: 2},
			&cli.IntFlag{Name: "max-plies", Usage: "stop after this many plies", Value: 200},
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Action: selfplay,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("selfplay failed")
	}
}

func selfplay(cCtx *cli.Context) error {
	log2.Configure(cCtx.String("log-level"))

	engines := map[model.Side]*engine.Engine{}
	for _, side := range []model.Side{model.Red, model.White} {
		strategy, err := engine.ParseStrategy(cCtx.String(string(side)))
		if err != nil {
			return err
		}
		engines[side] = engine.New(cCtx.Int("depth"), strategy)
	}

	board := model.NewBoard()
	toMove := model.Red
	for ply := 1; ply <= cCtx.Int("max-plies"); ply++ {
		if winner := board.Winner(); winner != model.NoWinner {
			fmt.Printf("%s wins after %d plies\n", winner, ply-1)
			return nil
		}
		result, ok := engines[toMove].BestMove(board, toMove)
		if !ok {
			fmt.Printf("%s has no move, %s wins after %d plies\n", toMove, toMove.Opponent(), ply-1)
			return nil
		}
		log2.Debugf("ply %d: %s %v -> %v captures=%d score=%.1f",
			ply, toMove, result.Move.From, result.Move.To, len(result.Move.Captures), result.Score)
		board = result.Board
		toMove = toMove.Opponent()
	}

	fmt.Println(board)
	fmt.Printf("no result after %d plies: red %d, white %d\n",
		cCtx.Int("max-plies"), board.Left(model.Red), board.Left(model.White))
	return nil
}
