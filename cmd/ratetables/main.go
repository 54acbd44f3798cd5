// Command ratetables inspects the effective tax-year rate tables: the built-in
// tables plus the optional YAML file named by NAIJATAX_RATETABLES_FILE.
// Usage: ratetables [check|years|show YEAR|export FILE.xlsx]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"naijatax/internal/config"
	"naijatax/internal/handler"
	"naijatax/internal/ratetable"
	"naijatax/internal/taxengine"
	"naijatax/internal/xlsxexport"
)

const usage = "Usage: ratetables [check|years|show YEAR|export FILE.xlsx]"

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	tables, err := ratetable.Load(cfg.RateTables.File)
	if err != nil {
		log.Fatalf("rate tables rejected: %v", err)
	}

	switch os.Args[1] {
	case "check":
		log.Printf("rate tables valid for years %v", tables.Years())

	case "years":
		for _, y := range tables.Years() {
			fmt.Println(y)
		}

	case "show":
		if len(os.Args) < 3 {
			log.Fatal("show requires a year argument")
		}
		year, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("invalid year: %v", err)
		}
		t, err := tables.ForYear(year)
		if err != nil {
			log.Fatal(err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(handler.RateTableView{RateTable: t, WHT: t.WHTEntries()}); err != nil {
			log.Fatalf("encoding rate table: %v", err)
		}

	case "export":
		if len(os.Args) < 3 {
			log.Fatal("export requires an output file")
		}
		all := make([]*taxengine.RateTable, 0, len(tables.Years()))
		for _, y := range tables.Years() {
			t, err := tables.ForYear(y)
			if err != nil {
				log.Fatal(err)
			}
			all = append(all, t)
		}
		f, err := os.Create(os.Args[2])
		if err != nil {
			log.Fatalf("creating %s: %v", os.Args[2], err)
		}
		if err := xlsxexport.WriteRateTables(f, all); err != nil {
			_ = f.Close()
			log.Fatalf("writing workbook: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("closing %s: %v", os.Args[2], err)
		}
		log.Printf("exported %d rate tables to %s", len(all), os.Args[2])

	default:
		fmt.Printf("unknown command: %s\n", os.Args[1])
		fmt.Println(usage)
		os.Exit(1)
	}
}
