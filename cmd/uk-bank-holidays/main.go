package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/klabast/wb-services/uk-bank-holidays/holidays"
	"github.com/klabast/wb-services/uk-bank-holidays/internal/app"
	"github.com/klabast/wb-services/uk-bank-holidays/internal/commands"
)

func main() {
	// Check for subcommands
	if len(os.Args) > 1 && os.Args[1] == "refresh" {
		commands.Refresh(os.Args[2:])
		return
	}

	// Parse flags
	configPath := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	dataFile := flag.String("data", "", "Serve from an external TSV instead of the embedded dataset")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Listen = *addr
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	// Build the holiday table once; it is read-only for the process lifetime
	var table *holidays.Table
	if cfg.DataFile != "" {
		table, err = app.LoadTableFromFile(cfg.DataFile)
	} else {
		table, err = holidays.Default()
	}
	if err != nil {
		log.Fatalf("Failed to load holiday data: %v", err)
	}

	// Setup routes
	srv := app.NewServer(table, cfg)
	mux := http.NewServeMux()
	srv.Routes(mux)

	years := table.Years()
	if len(years) == 0 {
		log.Fatal("Holiday data is empty")
	}
	log.Printf("Starting UK bank holidays service on %s (years %d-%d)", cfg.Listen, years[0], years[len(years)-1])
	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		log.Fatal(err)
	}
}
