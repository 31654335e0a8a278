package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/cataloglens/backend/internal/dataset"
	"github.com/cataloglens/backend/internal/miner"
)

var (
	inputPath  = flag.String("input", "archive/amazon-products.csv", "Input product dataset CSV")
	outputPath = flag.String("output", "schema.json", "Schema JSON output path")
	minCount   = flag.Int("min-count", 5, "Minimum support for a category value")
	maxSubcats = flag.Int("max-subcategories", 999, "Maximum subcategories kept")
	topN       = flag.Int("top-n", 999, "Top-N cutoff for brand/color/material vocabularies")
	statsPath  = flag.String("stats", "", "Optional SQLite output with per-attribute value frequencies")
)

func main() {
	flag.Parse()

	log.Printf("Loading dataset from %s...", *inputPath)
	records, err := dataset.LoadCSV(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("No records found in %s", *inputPath)
	}
	log.Printf("Loaded %d records", len(records))

	result := miner.Mine(records, miner.Options{
		MinCategoryCount: *minCount,
		MaxSubcategories: *maxSubcats,
		TopBrands:        *topN,
		TopColors:        *topN,
		TopMaterials:     *topN,
	})

	for _, name := range []string{"category", "subcategory", "brand", "color", "material"} {
		log.Printf("%s values found: %d", name, len(result.Schema.Properties[name].Values))
	}

	data, err := json.MarshalIndent(result.Schema, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode schema: %v", err)
	}
	if err := os.WriteFile(*outputPath, append(data, '\n'), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *outputPath, err)
	}
	log.Printf("Schema written to %s", *outputPath)

	if *statsPath != "" {
		if err := writeStats(*statsPath, result.Counts); err != nil {
			log.Fatalf("Failed to write stats: %v", err)
		}
		log.Printf("Frequency stats written to %s", *statsPath)
	}
}

// writeStats persists the raw mining frequencies so vocabulary cutoffs can
// be inspected and tuned without rerunning the miner.
func writeStats(path string, counts map[string]miner.Counts) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		DROP TABLE IF EXISTS vocabulary;
		CREATE TABLE vocabulary (
			attribute TEXT NOT NULL,
			value     TEXT NOT NULL,
			count     INTEGER NOT NULL
		);
		CREATE INDEX idx_vocabulary_attribute ON vocabulary(attribute, count DESC);
	`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO vocabulary (attribute, value, count) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	attributes := make([]string, 0, len(counts))
	for attr := range counts {
		attributes = append(attributes, attr)
	}
	sort.Strings(attributes)

	for _, attr := range attributes {
		for _, value := range counts[attr].TopN(0) {
			if _, err := stmt.Exec(attr, value, counts[attr][value]); err != nil {
				tx.Rollback()
				return fmt.Errorf("insert %s/%s: %w", attr, value, err)
			}
		}
	}

	return tx.Commit()
}
