package extract

import (
	"reflect"
	"testing"

	"github.com/avikram/filingscope/internal/config"
)

func defaultMetricExtractor() *MetricExtractor {
	return NewMetricExtractor(config.ExtractionConfig{
		Metrics: config.DefaultMetricPatterns(),
	})
}

func TestExtractRevenueWithCommas(t *testing.T) {
	ex := defaultMetricExtractor()

	metrics := ex.Extract("Total revenues $12,345.6 million for the fiscal year.")

	got, ok := metrics["revenue"]
	if !ok {
		t.Fatal("revenue not extracted")
	}
	if got != 12345.6 {
		t.Errorf("revenue = %f, want 12345.6", got)
	}
}

func TestExtractPatternPriorityOverPosition(t *testing.T) {
	ex := defaultMetricExtractor()

	// "revenues $100" appears first in the document, but the more specific
	// "total revenue" pattern ranks higher and must win.
	content := "Product revenues $100 improved, and total revenue $200 was reported."
	metrics := ex.Extract(content)

	if got := metrics["revenue"]; got != 200 {
		t.Errorf("revenue = %f, want 200 (pattern order beats document order)", got)
	}
}

func TestExtractFallThroughOnParseFailure(t *testing.T) {
	ex := defaultMetricExtractor()

	// The first revenue pattern matches ",," which does not parse; the next
	// pattern must then get its chance.
	content := "total revenue $,, while net revenue $500 held steady"
	metrics := ex.Extract(content)

	if got := metrics["revenue"]; got != 500 {
		t.Errorf("revenue = %f, want 500 after fall-through", got)
	}
}

func TestExtractAbsenceIsNotZero(t *testing.T) {
	ex := defaultMetricExtractor()

	metrics := ex.Extract("No financial figures appear in this press release excerpt.")

	if len(metrics) != 0 {
		t.Errorf("expected no metrics, got %v", metrics)
	}
	if _, ok := metrics["revenue"]; ok {
		t.Error("revenue key should be absent, not zero")
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	ex := defaultMetricExtractor()

	metrics := ex.Extract("TOTAL ASSETS $9,876 THOUSAND")

	if got := metrics["total_assets"]; got != 9876 {
		t.Errorf("total_assets = %f, want 9876", got)
	}
}

func TestExtractAllMetrics(t *testing.T) {
	ex := defaultMetricExtractor()

	content := "Total revenues $500.0 million. " +
		"Net income $120.5 million. " +
		"Research and development $210.3 million. " +
		"Total assets $2,000 million. " +
		"Cash and cash equivalents $890 million."
	metrics := ex.Extract(content)

	want := map[string]float64{
		"revenue":              500.0,
		"net_income":           120.5,
		"research_development": 210.3,
		"total_assets":         2000,
		"cash_and_equivalents": 890,
	}
	if !reflect.DeepEqual(metrics, want) {
		t.Errorf("metrics = %v, want %v", metrics, want)
	}
}

func TestExtractScaleSuffixIgnoredByDefault(t *testing.T) {
	ex := defaultMetricExtractor()

	metrics := ex.Extract("Cash and cash equivalents $2.5 billion at year end.")

	if got := metrics["cash_and_equivalents"]; got != 2.5 {
		t.Errorf("cash = %f, want 2.5 (scale suffix ignored by default)", got)
	}
}

func TestExtractScaleSuffixApplied(t *testing.T) {
	ex := NewMetricExtractor(config.ExtractionConfig{
		Metrics:    config.DefaultMetricPatterns(),
		ApplyScale: true,
	})

	tests := []struct {
		content  string
		metric   string
		expected float64
	}{
		{"Cash and cash equivalents $2.5 billion at year end.", "cash_and_equivalents", 2.5e9},
		{"Total revenue $750 million reported.", "revenue", 750e6},
		{"Total assets $980 thousand.", "total_assets", 980e3},
		{"Net income $42 with no suffix.", "net_income", 42},
	}

	for _, tt := range tests {
		t.Run(tt.metric, func(t *testing.T) {
			metrics := ex.Extract(tt.content)
			if got := metrics[tt.metric]; got != tt.expected {
				t.Errorf("%s = %f, want %f", tt.metric, got, tt.expected)
			}
		})
	}
}

func TestExtractEmptyContent(t *testing.T) {
	ex := defaultMetricExtractor()

	metrics := ex.Extract("")
	if metrics == nil {
		t.Fatal("expected non-nil map for empty content")
	}
	if len(metrics) != 0 {
		t.Errorf("expected no metrics for empty content, got %v", metrics)
	}
}

func TestExtractDeterministic(t *testing.T) {
	ex := defaultMetricExtractor()
	content := "Total revenues $500.0 million. Net income $120.5 million."

	first := ex.Extract(content)
	second := ex.Extract(content)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not deterministic: %v vs %v", first, second)
	}
}

func TestExtractInvalidPatternSkipped(t *testing.T) {
	ex := NewMetricExtractor(config.ExtractionConfig{
		Metrics: []config.MetricPattern{
			{Name: "revenue", Patterns: []string{
				`(unbalanced`,
				`revenue[s]?\s*\$?([0-9,]+(?:\.[0-9]+)?)`,
			}},
		},
	})

	metrics := ex.Extract("revenues $42 in total")
	if got := metrics["revenue"]; got != 42 {
		t.Errorf("revenue = %f, want 42 via the surviving pattern", got)
	}
}
