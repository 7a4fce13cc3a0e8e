package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
)

// dbtool prepares the shared Postgres cache database: it creates the
// schema and optionally pre-loads the geocode cache from a JSON file of
// known places, so a fresh deployment does not hammer Nominatim.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	seedPath := os.Getenv("GEOCODE_SEED_PATH")
	if seedPath == "" {
		return
	}

	log.Printf("Seeding geocode cache from %s...", seedPath)
	n, err := seedGeocodeCache(context.Background(), pg, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeded %d places.", n)
}

type placeSeed struct {
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

func seedGeocodeCache(ctx context.Context, pg *sql.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var seeds []placeSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return 0, err
	}

	geocodeCache := cache.NewSQLGeocodeCache(pg)
	count := 0
	for i, s := range seeds {
		addr := strings.Join(strings.Fields(s.Address), " ")
		if addr == "" {
			log.Printf("skipping seed #%d: empty address", i+1)
			continue
		}

		place := ports.Place{
			Coordinates: domain.Coordinates{Lat: s.Lat, Lon: s.Lon},
			DisplayName: s.DisplayName,
		}
		if !place.Coordinates.Valid() {
			log.Printf("skipping seed %q: implausible coordinates", addr)
			continue
		}

		if err := geocodeCache.PutPlace(ctx, addr, place); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
