package search

import (
	"context"
	"testing"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/repository/corpus"
	"github.com/kaira-health/medkb/internal/usecase/embedding"
)

func seedCorpus(t *testing.T) (*corpus.Corpus, *embedding.FallbackEmbedder) {
	t.Helper()
	emb := embedding.NewFallback()
	c := corpus.New()

	docs := []domain.Document{
		{ID: "d1", Name: "Cardiology visit", Content: "blood pressure elevated lisinopril prescribed"},
		{ID: "d2", Name: "Lab report", Content: "hemoglobin glucose creatinine within range"},
		{ID: "d3", Name: "Pharmacy bill", Content: "invoice total payment received"},
	}
	for _, d := range docs {
		vec, err := emb.Embed(context.Background(), d.Content)
		if err != nil {
			t.Fatalf("embed %s: %v", d.ID, err)
		}
		d.Embedding = vec
		c.Add(d)
	}
	return c, emb
}

func TestSearch_SemanticRanksRelevantFirst(t *testing.T) {
	c, emb := seedCorpus(t)
	svc := New(c, emb)

	results, err := svc.Search(context.Background(), "blood pressure lisinopril", 0, ModeSemantic)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Document.ID != "d1" {
		t.Errorf("expected d1 first, got %s", results[0].Document.ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestSearch_DefaultTopK(t *testing.T) {
	c, emb := seedCorpus(t)
	svc := New(c, emb)

	results, err := svc.Search(context.Background(), "glucose", -1, ModeSemantic)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) > DefaultTopK {
		t.Errorf("k <= 0 must cap at %d, got %d", DefaultTopK, len(results))
	}
}

func TestSearch_HybridBoostsKeywordMatches(t *testing.T) {
	c, emb := seedCorpus(t)
	svc := New(c, emb)

	results, err := svc.Search(context.Background(), "invoice payment", 3, ModeHybrid)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Document.ID != "d3" {
		t.Errorf("expected keyword-heavy d3 first, got %s", results[0].Document.ID)
	}
}

func TestSearch_HybridMatchesPunctuatedQuestion(t *testing.T) {
	c, emb := seedCorpus(t)
	svc := New(c, emb)

	results, err := svc.Search(context.Background(), "what medication was prescribed?", 3, ModeHybrid)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only the prescribing note, got %d results", len(results))
	}
	if results[0].Document.ID != "d1" {
		t.Errorf("expected d1, got %s", results[0].Document.ID)
	}
}

func TestKeywordRank_StripsPunctuation(t *testing.T) {
	c, emb := seedCorpus(t)
	svc := New(c, emb)

	ranked := svc.keywordRank("lisinopril?", 10)
	if len(ranked) != 1 || ranked[0].Document.ID != "d1" {
		t.Fatalf("trailing punctuation must not block term overlap, got %+v", ranked)
	}
}

func TestKeywordRank_ExcludesZeroOverlap(t *testing.T) {
	c, emb := seedCorpus(t)
	svc := New(c, emb)

	ranked := svc.keywordRank("zzz qqq", 10)
	if len(ranked) != 0 {
		t.Errorf("no term overlap must yield no keyword results, got %d", len(ranked))
	}
}

func TestSearchChunks(t *testing.T) {
	emb := embedding.NewFallback()
	c := corpus.New()

	doc := domain.Document{ID: "d1", Content: "x"}
	for i, content := range []string{"Metformin 500mg twice daily", "HbA1c 7.2 percent"} {
		vec, _ := emb.Embed(context.Background(), content)
		doc.Chunks = append(doc.Chunks, domain.Chunk{
			ID: "d1#" + string(rune('0'+i)), DocumentID: "d1", Content: content, Embedding: vec, Position: i,
		})
	}
	c.Add(doc)

	svc := New(c, emb)
	results, err := svc.SearchChunks(context.Background(), "metformin dose", 1)
	if err != nil {
		t.Fatalf("SearchChunks: %v", err)
	}
	if len(results) != 1 || results[0].Chunk.Position != 0 {
		t.Errorf("expected the metformin chunk, got %+v", results)
	}
}
