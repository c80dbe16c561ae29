package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klabast/wb-services/uk-bank-holidays/holidays"
	"github.com/klabast/wb-services/uk-bank-holidays/internal/gendata"
)

// Refresh handles the refresh subcommand: it fetches the GOV.UK feed and
// rewrites the TSV reference data artifact.
func Refresh(args []string) {
	fs := flag.NewFlagSet("refresh", flag.ExitOnError)
	source := fs.String("source", gendata.DefaultSourceURL, "Feed URL to fetch")
	out := fs.String("out", "holidays/uk_bank_holidays.tsv", "Output TSV path")
	timeout := fs.Duration("timeout", 30*time.Second, "Fetch timeout")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: uk-bank-holidays refresh [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Fetches the GOV.UK bank-holidays feed and regenerates the\n")
		fmt.Fprintf(os.Stderr, "holiday reference data. Rebuild the binary afterwards to pick\n")
		fmt.Fprintf(os.Stderr, "up the new embedded dataset.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	records, err := gendata.Fetch(ctx, *source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Prove the new data builds a valid table before touching the artifact.
	if _, err := holidays.Load(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error: fetched data is not loadable: %v\n", err)
		os.Exit(1)
	}

	if err := writeTSVFile(*out, records); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d records to %s\n", len(records), *out)
}

// writeTSVFile writes to a temp file in the target directory and renames it
// into place, so a failed refresh never leaves a truncated artifact.
func writeTSVFile(path string, records []holidays.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := gendata.WriteTSV(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
