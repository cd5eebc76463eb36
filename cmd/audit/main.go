// Command audit checks the team and friendship tables for broken
// relationships and can repair stale member counters.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"foilctf/internal/config"
	"foilctf/internal/database"
	"foilctf/internal/repository"
	"foilctf/internal/service"
)

func main() {
	repair := flag.Bool("repair", false, "rewrite members_count from membership edges before auditing")
	flag.Parse()

	ok, err := run(*repair)
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		os.Exit(1)
	}
}

func run(repair bool) (bool, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return false, fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return false, fmt.Errorf("connect database: %w", err)
	}

	ctx := context.Background()
	auditor := service.NewInvariantAuditor(repository.NewStore(db))

	if repair {
		fixed, err := auditor.RepairCounts(ctx)
		if err != nil {
			return false, fmt.Errorf("repair counts: %w", err)
		}
		log.Printf("repaired %d team counters", fixed)
	}

	report, err := auditor.Audit(ctx)
	if err != nil {
		return false, fmt.Errorf("audit: %w", err)
	}
	if report.OK() {
		log.Println("no violations found")
		return true, nil
	}

	for _, v := range report.Violations {
		log.Printf("%s %s: %s", v.Kind, v.Subject, v.Detail)
	}
	log.Printf("%d violations (%v)", len(report.Violations), report.Kinds())
	return false, nil
}
