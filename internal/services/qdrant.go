package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

// QdrantService stores the skills corpus in a qdrant collection, one
// point per skill row, and answers nearest-skill queries. The ingestion
// script populates it; the matcher only reads.
type QdrantService interface {
	InitCollection() error
	UpsertSkill(ctx context.Context, row int, skill string, embedding []float32) error
	SearchSkills(ctx context.Context, queryEmbedding []float32, limit int) ([]SkillHit, error)
	CountSkills(ctx context.Context) (uint64, error)
}

// SkillHit is one scored point returned from the collection.
type SkillHit struct {
	Skill string
	Row   int
	Score float32
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertSkill implements QdrantService. The corpus row number is the
// point ID, so re-ingesting the same corpus overwrites in place.
func (q *qdrantService) UpsertSkill(ctx context.Context, row int, skill string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(row)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"skill": skill,
			"row":   row,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSkills implements QdrantService.
func (q *qdrantService) SearchSkills(ctx context.Context, queryEmbedding []float32, limit int) ([]SkillHit, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var hits []SkillHit
	for _, point := range searchResult {
		hit := SkillHit{Score: point.Score}

		if skill, ok := point.Payload["skill"]; ok {
			if val, ok := skill.GetKind().(*qdrant.Value_StringValue); ok {
				hit.Skill = val.StringValue
			}
		}
		if row, ok := point.Payload["row"]; ok {
			if val, ok := row.GetKind().(*qdrant.Value_IntegerValue); ok {
				hit.Row = int(val.IntegerValue)
			}
		}

		if hit.Skill != "" {
			hits = append(hits, hit)
		}
	}

	return hits, nil
}

// CountSkills implements QdrantService.
func (q *qdrantService) CountSkills(ctx context.Context) (uint64, error) {
	count, err := q.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: q.collectionName,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return count, nil
}

// qdrantSkillIndex adapts the qdrant collection to the SkillIndex
// interface used by the semantic matcher.
type qdrantSkillIndex struct {
	store      QdrantService
	perVector  int
	corpusSize int
}

const defaultCandidatesPerVector = 20

func NewQdrantSkillIndex(store QdrantService, corpusSize int) SkillIndex {
	return &qdrantSkillIndex{
		store:      store,
		perVector:  defaultCandidatesPerVector,
		corpusSize: corpusSize,
	}
}

// Query implements SkillIndex: per-skill best score over all segment
// vectors, pulled from the collection's top candidates per vector.
func (q *qdrantSkillIndex) Query(ctx context.Context, vectors [][]float32, threshold float64, topK int) ([]SkillMatch, error) {
	best := make(map[string]float64)

	for _, vector := range vectors {
		hits, err := q.store.SearchSkills(ctx, vector, q.perVector)
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			if score := float64(hit.Score); score > best[hit.Skill] {
				best[hit.Skill] = score
			}
		}
	}

	candidates := make([]SkillMatch, 0, len(best))
	for skill, score := range best {
		candidates = append(candidates, SkillMatch{Skill: skill, Similarity: score})
	}
	return rankSkillMatches(candidates, threshold, topK), nil
}

func (q *qdrantSkillIndex) Size() int {
	return q.corpusSize
}
