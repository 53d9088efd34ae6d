package main

import (
	"fmt"
	stdlog "log"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/jinsei-game/jinsei/internal/game"
	"github.com/jinsei-game/jinsei/internal/save"
	"github.com/jinsei-game/jinsei/internal/web"
)

type config struct {
	Addr      string `env:"JINSEI_ADDR" envDefault:":8080"`
	CardsFile string `env:"JINSEI_CARDS"`
	SavePath  string `env:"JINSEI_SAVE_DB"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse env: %v\n", err)
		os.Exit(1)
	}

	catalog := game.DefaultCatalog()
	if cfg.CardsFile != "" {
		loaded, err := game.LoadCatalog(cfg.CardsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: load cards: %v\n", err)
			os.Exit(1)
		}
		catalog = loaded
	}

	var store *save.Store
	if cfg.SavePath != "" {
		var err error
		store, err = save.Open(cfg.SavePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	srv := web.NewServer(game.DefaultConfig(), catalog, store)
	stdlog.Printf("jinsei web server listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
