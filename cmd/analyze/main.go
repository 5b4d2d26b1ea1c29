package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/yasmineajailia/ATS-AGENT/internal/config"
	"github.com/yasmineajailia/ATS-AGENT/internal/models"
	"github.com/yasmineajailia/ATS-AGENT/internal/services"
)

func main() {
	resumePath := flag.String("resume", "", "path to the resume PDF (required)")
	jobText := flag.String("job", "", "job description text")
	jobFile := flag.String("job-file", "", "path to a text file holding the job description")
	preset := flag.String("preset", config.PresetPipeline, "weight preset: pipeline or platform")
	profileFile := flag.String("profile", "", "YAML match profile overriding presets and level cutoffs")
	useSemantic := flag.Bool("semantic", false, "enable embedding-based skill matching (needs GEMINI_API_KEY)")
	useLinguistic := flag.Bool("linguistic", true, "enable part-of-speech keyword extraction")
	useLLM := flag.Bool("llm", false, "enable LLM resume profile extraction (needs GEMINI_API_KEY)")
	skillsFile := flag.String("skills", "", "skills corpus CSV for semantic matching")
	threshold := flag.Float64("threshold", 0, "semantic similarity threshold in (0,1]")
	topK := flag.Int("top-k", 0, "cap on semantic skill hits")
	output := flag.String("output", "", "write the full JSON result to this file")
	flag.Parse()

	if *resumePath == "" {
		flag.Usage()
		log.Fatal("❌ -resume is required")
	}

	job := strings.TrimSpace(*jobText)
	if job == "" && *jobFile != "" {
		data, err := os.ReadFile(*jobFile)
		if err != nil {
			log.Fatalf("❌ Failed to read job file: %v", err)
		}
		job = strings.TrimSpace(string(data))
	}
	if job == "" {
		flag.Usage()
		log.Fatal("❌ A job description is required: pass -job or -job-file")
	}

	cfg := config.Load()
	if *skillsFile != "" {
		cfg.Matching.SkillsFile = *skillsFile
	}
	if *threshold > 0 {
		cfg.Matching.SimilarityThreshold = *threshold
	}
	if *topK > 0 {
		cfg.Matching.TopK = *topK
	}
	if *profileFile != "" {
		cfg.Matching.ProfileFile = *profileFile
	}

	matchProfile, err := config.LoadMatchProfile(cfg.Matching.ProfileFile)
	if err != nil {
		log.Fatalf("❌ Failed to load match profile: %v", err)
	}

	ctx := context.Background()

	var gemini services.GeminiService
	if *useSemantic || *useLLM {
		gemini, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.ChatModel, cfg.Gemini.EmbedModel)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
	}

	dictionary := services.NewSkillsDictionary()

	var linguistic services.LinguisticExtractor
	if *useLinguistic {
		linguistic = services.NewLinguisticExtractor()
	}

	var semantic services.SemanticMatcherService
	if *useSemantic {
		corpus, err := services.LoadSkillsCorpus(cfg.Matching.SkillsFile, cfg.Matching.MaxSkills)
		if err != nil {
			log.Fatalf("❌ Failed to load skills corpus: %v", err)
		}
		index, err := services.NewLocalSkillIndex(
			ctx,
			gemini,
			corpus,
			cfg.Matching.CacheDir,
			cfg.Matching.MaxSkills,
			cfg.Gemini.EmbedModel,
		)
		if err != nil {
			log.Fatalf("❌ Failed to build skill index: %v", err)
		}
		semantic = services.NewSemanticMatcherService(
			gemini,
			index,
			services.NewTextSegmenter(0),
			cfg.Matching.SimilarityThreshold,
			cfg.Matching.TopK,
		)
	}

	extractor := services.NewKeywordExtractorService(dictionary, linguistic, semantic, cfg.Matching.TopKeywords)

	var profiler services.ProfileExtractorService
	if *useLLM {
		profiler = services.NewProfileExtractorService(gemini, cfg.Worker.RetryMaxAttempts)
	}

	pipeline := services.NewPipelineService(
		services.NewPDFParserService(),
		extractor,
		services.NewSimilarityService(matchProfile.Weights(*preset), matchProfile.Levels),
		services.NewFormatAnalyzerService(),
		profiler,
	)

	result := pipeline.Analyze(ctx, *resumePath, job)

	if *output != "" {
		if err := pipeline.SaveResult(result, *output); err != nil {
			log.Printf("⚠️  Failed to save result: %v", err)
		}
	}

	printResult(result)

	if !result.Success {
		os.Exit(1)
	}
}

func printResult(result *models.AnalysisResult) {
	line := strings.Repeat("=", 60)

	fmt.Println(line)
	fmt.Println("  RESUME MATCH REPORT")
	fmt.Println(line)

	if !result.Success {
		fmt.Printf("Analysis failed: %s\n", result.Error)
		return
	}

	match := result.Match
	fmt.Printf("Overall Score : %.2f%%\n", match.OverallPercentage)
	fmt.Printf("Match Level   : %s\n", match.MatchLevel)
	fmt.Println()

	fmt.Println("Detailed Scores")
	fmt.Printf("  Text similarity     : %.4f\n", match.Detailed.TextSimilarity)
	fmt.Printf("  Skills match rate   : %.4f\n", match.Detailed.SkillsMatchRate)
	fmt.Printf("  Keywords match rate : %.4f\n", match.Detailed.KeywordsMatchRate)
	fmt.Printf("  All keywords rate   : %.4f\n", match.Detailed.AllKeywordsMatchRate)
	fmt.Println()

	fmt.Printf("Matched Skills (%d): %s\n", len(match.MatchedSkills), joinOrNone(match.MatchedSkills))
	fmt.Printf("Missing Skills (%d): %s\n", len(match.MissingSkills), joinOrNone(match.MissingSkills))
	fmt.Println()

	if len(result.Recommendations) > 0 {
		fmt.Println("Recommendations")
		for _, rec := range result.Recommendations {
			fmt.Printf("  %s\n", rec)
		}
		fmt.Println()
	}

	if format := result.Format; format != nil {
		fmt.Println("Format Analysis")
		fmt.Printf("  ATS score : %d/100 (%s)\n", format.ATSScore, format.ATSRating)
		fmt.Printf("  Sections  : %s\n", joinOrNone(format.DetectedSections))
		for _, issue := range format.Issues {
			fmt.Printf("  ⚠️  %s\n", issue)
		}
		fmt.Println()
	}

	if profile := result.Profile; profile != nil && profile.Summary != "" {
		fmt.Println("Candidate Summary")
		fmt.Printf("  %s\n", profile.Summary)
		fmt.Println()
	}

	fmt.Println(line)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
