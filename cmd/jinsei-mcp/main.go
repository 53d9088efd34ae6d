package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jinsei-game/jinsei/internal/game"
	jinseimcp "github.com/jinsei-game/jinsei/internal/mcp"
	"github.com/jinsei-game/jinsei/internal/save"
)

func main() {
	cardsFile := flag.String("cards", "", "path to a cards YAML file (empty for the built-in set)")
	savePath := flag.String("save", "", "path to a save database (empty disables saving)")
	flag.Parse()

	cfg := game.DefaultConfig()
	if *cardsFile != "" {
		catalog, err := game.LoadCatalog(*cardsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Catalog = catalog
	}
	jinseimcp.SetConfig(cfg)

	if *savePath != "" {
		store, err := save.Open(*savePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		jinseimcp.SetStore(store)
	}

	s := server.NewMCPServer("jinsei", "1.0.0")
	jinseimcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
