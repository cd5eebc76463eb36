// Command seed loads demo players, teams and friendships.
package main

import (
	"context"
	"flag"
	"log"

	"foilctf/internal/bootstrap"
	"foilctf/internal/config"
	"foilctf/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "number of random users to create")
	scenario := flag.String("scenario", "", "path to a YAML scenario (default: built-in demo)")
	clean := flag.Bool("clean", false, "delete existing data first")
	fakerSeed := flag.Int64("faker-seed", 0, "seed for generated names")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, _, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{ApplySchema: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := seed.Seed(ctx, db, seed.Options{
		NumUsers:     *numUsers,
		ScenarioPath: *scenario,
		ShouldClean:  *clean,
		FakerSeed:    *fakerSeed,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
