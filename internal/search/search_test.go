package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/pkg/models"
)

type memStore struct {
	records []models.FilingRecord
	err     error
}

func (m *memStore) Put(ctx context.Context, rec *models.FilingRecord) error {
	m.records = append(m.records, *rec)
	return nil
}

func (m *memStore) GetAll(ctx context.Context) ([]models.FilingRecord, error) {
	return m.records, m.err
}

func (m *memStore) Exists(ctx context.Context, filingID string) (bool, error) {
	return false, nil
}

func (m *memStore) Close() {}

func filing(id, form, date, content string) models.FilingRecord {
	return models.FilingRecord{
		FilingSummary: models.FilingSummary{
			ID:          id,
			FormType:    form,
			FilingDate:  date,
			CompanyName: "Alnylam Pharmaceuticals, Inc.",
		},
		Content: content,
	}
}

func testConfig() config.SearchConfig {
	return config.SearchConfig{
		ContextChars:        200,
		MaxMatchesPerFiling: 5,
		KeywordContextChars: 100,
		FormTypes:           models.SupportedFormTypes(),
		BiotechKeywords:     []string{"pipeline", "siRNA"},
		PipelineKeywords:    []string{"pipeline", "clinical trial"},
		RiskKeywords:        []string{"risk", "litigation"},
		PartnershipKeywords: []string{"collaboration", "milestone"},
	}
}

func testEngine(records ...models.FilingRecord) *Engine {
	return NewEngine(&memStore{records: records}, testConfig())
}

// ── Search ──

func TestSearchFindsMatches(t *testing.T) {
	content := "The clinical pipeline advanced two programs. Our pipeline now spans four areas."
	eng := testEngine(filing("f1", "10-K", "2024-02-14", content))

	results := eng.Search(context.Background(), "pipeline", Options{})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.FilingID != "f1" {
		t.Errorf("filing: got %s, want f1", r.FilingID)
	}
	if r.MatchCount != 2 {
		t.Errorf("match count: got %d, want 2", r.MatchCount)
	}
	if len(r.Contexts) != 2 {
		t.Fatalf("contexts: got %d, want 2", len(r.Contexts))
	}
	if want := strings.Index(content, "pipeline"); r.Contexts[0].Position != want {
		t.Errorf("position: got %d, want %d", r.Contexts[0].Position, want)
	}
	if r.Contexts[0].Highlight != "pipeline" {
		t.Errorf("highlight: got %q, want %q", r.Contexts[0].Highlight, "pipeline")
	}
	// Content is shorter than the window, so the context is the whole text.
	if r.Contexts[0].Context != content {
		t.Errorf("context: got %q", r.Contexts[0].Context)
	}
}

func TestSearchRanking(t *testing.T) {
	eng := testEngine(
		filing("new-single", "10-K", "2024-01-01", "phase"),
		filing("old-triple", "10-K", "2020-01-01", "phase phase phase"),
		filing("mid-triple", "10-K", "2021-01-01", "phase phase phase"),
	)

	results := eng.Search(context.Background(), "phase", Options{})

	want := []string{"mid-triple", "old-triple", "new-single"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, id := range want {
		if results[i].FilingID != id {
			t.Errorf("rank %d: got %s, want %s", i, results[i].FilingID, id)
		}
	}
}

func TestSearchCaseInsensitiveByDefault(t *testing.T) {
	eng := testEngine(filing("f1", "10-K", "2024-02-14", "Advances in RNAi therapeutics continued."))

	results := eng.Search(context.Background(), "rnai", Options{})

	if len(results) != 1 || results[0].MatchCount != 1 {
		t.Fatalf("expected 1 match, got %+v", results)
	}
	if results[0].Contexts[0].Highlight != "RNAi" {
		t.Errorf("highlight: got %q, want original casing RNAi", results[0].Contexts[0].Highlight)
	}
}

func TestSearchCaseSensitive(t *testing.T) {
	eng := testEngine(filing("f1", "10-K", "2024-02-14", "Advances in RNAi therapeutics continued."))

	if results := eng.Search(context.Background(), "rnai", Options{CaseSensitive: true}); len(results) != 0 {
		t.Errorf("expected no case-sensitive match for rnai, got %d", len(results))
	}
	if results := eng.Search(context.Background(), "RNAi", Options{CaseSensitive: true}); len(results) != 1 {
		t.Errorf("expected a case-sensitive match for RNAi, got %d", len(results))
	}
}

func TestSearchWholeWords(t *testing.T) {
	eng := testEngine(filing("f1", "10-K", "2024-02-14", "Multiple phases of the phase 3 study."))

	whole := eng.Search(context.Background(), "phase", Options{WholeWords: true})
	if len(whole) != 1 || whole[0].MatchCount != 1 {
		t.Errorf("whole words: expected 1 match, got %+v", whole)
	}

	loose := eng.Search(context.Background(), "phase", Options{})
	if len(loose) != 1 || loose[0].MatchCount != 2 {
		t.Errorf("substring: expected 2 matches, got %+v", loose)
	}
}

func TestSearchFormTypeFilter(t *testing.T) {
	eng := testEngine(
		filing("k", "10-K", "2024-01-01", "pipeline"),
		filing("q", "10-Q", "2024-02-01", "pipeline"),
	)

	results := eng.Search(context.Background(), "pipeline", Options{FormTypes: []string{"10-K"}})

	if len(results) != 1 || results[0].FilingID != "k" {
		t.Errorf("expected only the 10-K, got %+v", results)
	}
}

func TestSearchSkipsEmptyContent(t *testing.T) {
	eng := testEngine(filing("empty", "10-K", "2024-01-01", ""))

	if results := eng.Search(context.Background(), "pipeline", Options{}); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	eng := testEngine(filing("f1", "10-K", "2024-01-01", "pipeline"))

	if results := eng.Search(context.Background(), "   ", Options{}); results != nil {
		t.Errorf("expected nil for a blank query, got %+v", results)
	}
}

func TestSearchCapsContexts(t *testing.T) {
	eng := testEngine(filing("f1", "10-K", "2024-01-01", strings.Repeat("FDA ", 7)))

	results := eng.Search(context.Background(), "FDA", Options{})

	if results[0].MatchCount != 7 {
		t.Errorf("match count: got %d, want 7", results[0].MatchCount)
	}
	if len(results[0].Contexts) != 5 {
		t.Errorf("contexts: got %d, want 5", len(results[0].Contexts))
	}
}

func TestSearchLiteralMetacharacters(t *testing.T) {
	eng := testEngine(filing("f1", "10-K", "2024-01-01", "Revenue (net) rose."))

	results := eng.Search(context.Background(), "(net)", Options{})

	if len(results) != 1 || results[0].Contexts[0].Highlight != "(net)" {
		t.Errorf("expected a literal match for (net), got %+v", results)
	}
}

func TestSearchContextWindow(t *testing.T) {
	content := strings.Repeat("x", 300) + "FDA" + strings.Repeat("y", 300)
	eng := testEngine(filing("f1", "10-K", "2024-01-01", content))

	results := eng.Search(context.Background(), "FDA", Options{})

	got := results[0].Contexts[0]
	if got.Position != 300 {
		t.Errorf("position: got %d, want 300", got.Position)
	}
	if want := content[100:503]; got.Context != want {
		t.Errorf("context window: got %d chars, want %d", len(got.Context), len(want))
	}
}

func TestSearchStoreFailure(t *testing.T) {
	eng := NewEngine(&memStore{err: errors.New("backend down")}, testConfig())

	if results := eng.Search(context.Background(), "pipeline", Options{}); len(results) != 0 {
		t.Errorf("expected no results on store failure, got %d", len(results))
	}
}

// ── Keyword sweeps ──

func TestKeywordAnalysis(t *testing.T) {
	eng := testEngine(
		filing("a", "10-K", "2023-02-09", "Our PIPELINE expanded."),
		filing("b", "10-K", "2024-02-14", "pipeline progress plus siRNA programs"),
	)

	analysis := eng.KeywordAnalysis(context.Background())

	p, ok := analysis["pipeline"]
	if !ok {
		t.Fatal("expected pipeline stats")
	}
	if p.TotalMentions != 2 || p.FilingsCount != 2 {
		t.Errorf("mentions: got %d/%d, want 2/2", p.TotalMentions, p.FilingsCount)
	}
	if p.AveragePerFiling != 1.0 {
		t.Errorf("average: got %.2f, want 1.0", p.AveragePerFiling)
	}
	if p.YearlyMentions["2023"] != 1 || p.YearlyMentions["2024"] != 1 {
		t.Errorf("yearly: got %v", p.YearlyMentions)
	}
	if len(p.Contexts) != 2 || p.Contexts[0] != "our pipeline expanded." {
		t.Errorf("contexts: got %v", p.Contexts)
	}

	s, ok := analysis["siRNA"]
	if !ok {
		t.Fatal("expected siRNA stats")
	}
	if s.TotalMentions != 1 {
		t.Errorf("siRNA mentions: got %d, want 1", s.TotalMentions)
	}
}

func TestKeywordAnalysisOmitsUnmentioned(t *testing.T) {
	eng := testEngine(filing("a", "10-K", "2024-02-14", "nothing relevant here"))

	if analysis := eng.KeywordAnalysis(context.Background()); len(analysis) != 0 {
		t.Errorf("expected empty analysis, got %v", analysis)
	}
}

func TestKeywordAnalysisContextWindow(t *testing.T) {
	content := strings.Repeat("a", 150) + "siRNA" + strings.Repeat("b", 150)
	eng := testEngine(filing("f1", "10-K", "2024-02-14", content))

	analysis := eng.KeywordAnalysis(context.Background())

	want := strings.Repeat("a", 100) + "sirna" + strings.Repeat("b", 95)
	if got := analysis["siRNA"].Contexts[0]; got != want {
		t.Errorf("context: got %q, want %q", got, want)
	}
}

func TestPipelineMentionsAggregates(t *testing.T) {
	content := "pipeline update: the clinical trial reached phase 3. pipeline breadth grew."
	eng := testEngine(filing("f1", "10-K", "2024-02-14", content))

	mentions := eng.PipelineMentions(context.Background())

	if len(mentions) != 1 {
		t.Fatalf("expected 1 filing, got %d", len(mentions))
	}
	m := mentions[0]
	if m.MatchCount != 3 {
		t.Errorf("match count: got %d, want 3", m.MatchCount)
	}
	if len(m.Keywords) != 2 || m.Keywords[0] != "pipeline" || m.Keywords[1] != "clinical trial" {
		t.Errorf("keywords: got %v", m.Keywords)
	}
	if len(m.Contexts) != 3 {
		t.Errorf("contexts: got %d, want 3", len(m.Contexts))
	}
}

func TestRiskAnalysisScoring(t *testing.T) {
	eng := testEngine(
		filing("risky", "10-K", "2024-02-14", "risk of litigation and further risk"),
		filing("calm", "10-K", "2023-02-09", "modest risk only"),
	)

	scores := eng.RiskAnalysis(context.Background())

	if len(scores) != 2 {
		t.Fatalf("expected 2 filings, got %d", len(scores))
	}
	top := scores[0]
	if top.FilingID != "risky" {
		t.Errorf("top filing: got %s, want risky", top.FilingID)
	}
	if top.Mentions != 3 || top.KeywordsFound != 2 || top.Score != 6 {
		t.Errorf("got mentions=%d keywords=%d score=%d, want 3/2/6", top.Mentions, top.KeywordsFound, top.Score)
	}
	if scores[1].Score != 1 {
		t.Errorf("second score: got %d, want 1", scores[1].Score)
	}
}

func TestPartnershipAnalysisScoring(t *testing.T) {
	eng := testEngine(filing("f1", "10-K", "2024-02-14", "collaboration milestone collaboration"))

	scores := eng.PartnershipAnalysis(context.Background())

	if len(scores) != 1 || scores[0].Score != 6 {
		t.Errorf("expected score 6, got %+v", scores)
	}
}

func TestBuildSearchReport(t *testing.T) {
	eng := testEngine(filing("f1", "10-K", "2024-02-14", "pipeline expansion"))

	report := eng.BuildSearchReport(context.Background(), "pipeline")

	if report.SearchQuery != "pipeline" {
		t.Errorf("query: got %s", report.SearchQuery)
	}
	if report.AnalysisDate == "" {
		t.Error("expected an analysis date")
	}
	if _, ok := report.KeywordAnalysis["pipeline"]; !ok {
		t.Error("expected keyword analysis for pipeline")
	}
	if len(report.PipelineMentions) != 1 {
		t.Errorf("pipeline mentions: got %d, want 1", len(report.PipelineMentions))
	}
	if len(report.SearchResults) != 1 {
		t.Errorf("search results: got %d, want 1", len(report.SearchResults))
	}
}

func TestBuildSearchReportWithoutQuery(t *testing.T) {
	eng := testEngine(filing("f1", "10-K", "2024-02-14", "pipeline expansion"))

	report := eng.BuildSearchReport(context.Background(), "")

	if report.SearchResults != nil {
		t.Errorf("expected no search results without a query, got %d", len(report.SearchResults))
	}
}
