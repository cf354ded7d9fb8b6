package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/printomax/packtrackgo/internal/config"
	"github.com/printomax/packtrackgo/internal/database"
	"github.com/printomax/packtrackgo/internal/lookup"
	"github.com/printomax/packtrackgo/internal/models"
	"github.com/printomax/packtrackgo/internal/sync"
)

func main() {
	modeFlag := flag.String("mode", "", "sync mode: fill (non-destructive, default) or force (overwrite all snapshot columns)")
	productFlag := flag.String("product", "", "limit the run to a single product id")
	flag.Parse()

	fmt.Println("🔄 Reconciling order snapshots against the product master...")

	// 1. Load Config & DB
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if *modeFlag == "" {
		*modeFlag = cfg.Sync.DefaultMode
	}
	mode, err := sync.ParseMode(*modeFlag)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 2. Resolve lookup tables up front; a missing table degrades to
	// raw-id fallback rather than aborting the run
	maps := lookup.Resolve(db.DB, models.AllLookupTables...)

	// 3. Run
	engine := sync.NewEngine(db.DB, maps)
	engine.ProgressEvery = cfg.Sync.ProgressEvery

	var report *sync.Report
	if *productFlag != "" {
		fmt.Printf("📦 Scope: product %s (mode: %s)\n", *productFlag, mode)
		report, err = engine.RunProduct(*productFlag, mode)
	} else {
		fmt.Printf("📦 Scope: all products (mode: %s)\n", mode)
		report, err = engine.Run(mode)
	}
	if err != nil {
		log.Fatalf("❌ Sync aborted: %v", err)
	}

	report.Log()

	if report.ErrorCount() > 0 {
		os.Exit(1)
	}
}
