// Package extract pulls financial metrics and business signals out of
// filing content using configurable ordered regex patterns.
package extract

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/pkg/utils"
)

// MetricExtractor extracts financial metrics from filing text.
type MetricExtractor struct {
	metrics    []metricGroup
	applyScale bool
}

type metricGroup struct {
	name     string
	patterns []*regexp.Regexp
}

// NewMetricExtractor compiles the configured patterns. Matching is always
// case insensitive. Invalid patterns are skipped with a warning so one bad
// config line cannot disable extraction.
func NewMetricExtractor(cfg config.ExtractionConfig) *MetricExtractor {
	ex := &MetricExtractor{applyScale: cfg.ApplyScale}
	for _, m := range cfg.Metrics {
		group := metricGroup{name: m.Name}
		for _, p := range m.Patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				log.Warn().Str("metric", m.Name).Str("pattern", p).Err(err).
					Msg("skipping invalid metric pattern")
				continue
			}
			group.patterns = append(group.patterns, re)
		}
		ex.metrics = append(ex.metrics, group)
	}
	return ex
}

// Extract returns the metrics found in content. For each metric the patterns
// run in configured order and only the first occurrence of each pattern is
// considered: when its amount parses, that value wins and later patterns are
// skipped; when it does not, the next pattern gets a chance. A metric whose
// patterns never yield a parseable amount is absent from the result, which
// is not the same as reporting zero.
func (ex *MetricExtractor) Extract(content string) map[string]float64 {
	metrics := make(map[string]float64, len(ex.metrics))
	if content == "" {
		return metrics
	}

	for _, m := range ex.metrics {
		for _, re := range m.patterns {
			sub := re.FindStringSubmatch(content)
			if sub == nil {
				continue
			}
			v, err := utils.ParseAmount(sub[1])
			if err != nil {
				continue // fall through to the next pattern
			}
			if ex.applyScale && len(sub) > 2 {
				v *= scaleFactor(sub[2])
			}
			metrics[m.name] = v
			break
		}
	}
	return metrics
}

// scaleFactor maps a captured magnitude suffix to a multiplier. The suffix
// is captured by every built-in pattern but only applied when
// extraction.apply_scale is enabled; reported filings mix scaled and raw
// figures, so the safe default leaves values exactly as printed.
func scaleFactor(suffix string) float64 {
	switch strings.ToLower(suffix) {
	case "thousand":
		return 1e3
	case "million":
		return 1e6
	case "billion":
		return 1e9
	default:
		return 1
	}
}
