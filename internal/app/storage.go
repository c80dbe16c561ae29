package app

import (
	"fmt"
	"log"
	"os"

	"github.com/klabast/wb-services/uk-bank-holidays/holidays"
)

// LoadTableFromFile builds a holiday table from an external TSV artifact,
// for deployments that serve refreshed data without rebuilding the binary.
func LoadTableFromFile(path string) (*holidays.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing data file: %v", err)
		}
	}()

	records, err := holidays.ParseTSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table, err := holidays.Load(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("Loaded %d holiday records from %s (years %v)", len(records), path, table.Years())
	return table, nil
}
