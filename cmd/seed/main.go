// Command main runs the demo-data seeder for MemeVerse.
package main

import (
	"context"
	"flag"
	"log"

	"memeverse/internal/config"
	"memeverse/internal/database"
	"memeverse/internal/seed"
)

func main() {
	// Parse command line flags
	numUploads := flag.Int("uploads", 20, "Number of uploaded memes to create")
	commentsPerMeme := flag.Int("comments", 5, "Maximum comments per meme")
	shouldClean := flag.Bool("clean", true, "Clear existing data before seeding")
	seedVal := flag.Int64("seed", 0, "Faker seed (0 uses the clock)")
	flag.Parse()

	log.Println("🌱 Demo Data Seeder")
	log.Println("===================")
	log.Printf("Target: %d uploads, up to %d comments each, clean=%v\n",
		*numUploads, *commentsPerMeme, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, *seedVal)
	if err := s.Run(context.Background(), seed.Options{
		NumUploads:      *numUploads,
		CommentsPerMeme: *commentsPerMeme,
		ShouldClean:     *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! The store is populated with demo data.")
}
