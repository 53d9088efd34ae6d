package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/jinsei-game/jinsei/internal/cli"
	"github.com/jinsei-game/jinsei/internal/game"
	"github.com/jinsei-game/jinsei/internal/save"
)

func main() {
	name := flag.String("name", "プレイヤー", "player name")
	cardsFile := flag.String("cards", "", "path to a cards YAML file (empty for the built-in set)")
	seed := flag.Int64("seed", 0, "RNG seed (0 for random)")
	savePath := flag.String("save", "", "path to a save database (empty disables saving)")
	resume := flag.String("resume", "", "game ID to resume from the save database")
	flag.Parse()

	if err := run(*name, *cardsFile, *seed, *savePath, *resume); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(name, cardsFile string, seed int64, savePath, resume string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	catalog := game.DefaultCatalog()
	if cardsFile != "" {
		loaded, err := game.LoadCatalog(cardsFile)
		if err != nil {
			return fmt.Errorf("load cards: %w", err)
		}
		catalog = loaded
	}

	var store *save.Store
	if savePath != "" {
		var err error
		store, err = save.Open(savePath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	cfg := game.DefaultConfig()
	cfg.Catalog = catalog
	cfg.Seed = seed

	var g *game.Game
	if resume != "" {
		if store == nil {
			return fmt.Errorf("resume requires --save")
		}
		snap, err := store.Load(ctx, resume)
		if err != nil {
			return err
		}
		g = game.FromSnapshot(snap, cfg)
		name = g.PlayerName()
	} else {
		var err error
		g, err = game.NewGame(cfg)
		if err != nil {
			return err
		}
	}

	ctrl := &cli.TerminalController{}
	sess := game.NewSession(g, ctrl, name)
	if store != nil {
		sess.SaveFunc = func(ctx context.Context, snap *game.Snapshot) error {
			return store.Save(ctx, snap)
		}
	}

	if err := sess.Run(ctx); err != nil {
		return err
	}

	cli.PrintResult(g)
	return nil
}
