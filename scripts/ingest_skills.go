package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/yasmineajailia/ATS-AGENT/internal/config"
	"github.com/yasmineajailia/ATS-AGENT/internal/services"
)

// Loads the skills corpus CSV, embeds every skill and upserts it into
// the qdrant collection. Run once before starting the API with
// VECTOR_BACKEND=qdrant; re-running overwrites points in place.
func main() {
	log.Println("🚀 Starting skills ingestion...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.ChatModel,
		cfg.Gemini.EmbedModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	// Load the corpus
	log.Printf("📖 Loading skills from %s (max %d)", cfg.Matching.SkillsFile, cfg.Matching.MaxSkills)
	skills, err := services.LoadSkillsCorpus(cfg.Matching.SkillsFile, cfg.Matching.MaxSkills)
	if err != nil {
		log.Fatalf("❌ Failed to load skills corpus: %v", err)
	}
	log.Printf("✅ Loaded %d skills", len(skills))

	successCount := 0
	failCount := 0

	for i, skill := range skills {
		// Generate embedding
		embedding, err := geminiService.GenerateEmbedding(ctx, skill)
		if err != nil {
			log.Printf("❌ Failed to embed skill %d (%s): %v", i, skill, err)
			failCount++
			continue
		}

		// Store in Qdrant, keyed by corpus row
		if err := qdrantService.UpsertSkill(ctx, i, skill, embedding); err != nil {
			log.Printf("❌ Failed to store skill %d (%s): %v", i, skill, err)
			failCount++
			continue
		}

		successCount++
		if successCount%500 == 0 {
			log.Printf("📊 Progress: %d/%d skills stored", successCount, len(skills))
		}
	}

	if count, err := qdrantService.CountSkills(ctx); err == nil {
		log.Printf("📦 Collection now holds %d points", count)
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d skills", successCount)
	log.Printf("   ❌ Failed: %d skills", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some skills failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All skills ingested successfully!")
}
