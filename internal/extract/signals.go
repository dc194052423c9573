package extract

import (
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/avikram/filingscope/internal/config"
)

// SignalExtractor extracts business signal fragments (pipeline mentions,
// partnerships, patents) from filing text.
type SignalExtractor struct {
	signals []signalGroup
	maxPer  int
}

type signalGroup struct {
	name     string
	patterns []*regexp.Regexp
}

// NewSignalExtractor compiles the configured signal patterns, case
// insensitive, skipping invalid ones with a warning.
func NewSignalExtractor(cfg config.ExtractionConfig) *SignalExtractor {
	maxPer := cfg.MaxPerPattern
	if maxPer <= 0 {
		maxPer = 3
	}
	ex := &SignalExtractor{maxPer: maxPer}
	for _, s := range cfg.Signals {
		group := signalGroup{name: s.Name}
		for _, p := range s.Patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				log.Warn().Str("signal", s.Name).Str("pattern", p).Err(err).
					Msg("skipping invalid signal pattern")
				continue
			}
			group.patterns = append(group.patterns, re)
		}
		ex.signals = append(ex.signals, group)
	}
	return ex
}

// Extract returns the signal fragments found in content, keyed by category.
// Every configured category is present in the result, empty when nothing
// matched. Each pattern contributes at most maxPer fragments in document
// order, and fragments are never deduplicated: the same clause captured by
// two patterns appears twice.
func (ex *SignalExtractor) Extract(content string) map[string][]string {
	signals := make(map[string][]string, len(ex.signals))
	for _, s := range ex.signals {
		signals[s.name] = []string{}
	}
	if content == "" {
		return signals
	}

	for _, s := range ex.signals {
		for _, re := range s.patterns {
			for _, sub := range re.FindAllStringSubmatch(content, ex.maxPer) {
				if len(sub) > 1 {
					signals[s.name] = append(signals[s.name], sub[1])
				}
			}
		}
	}
	return signals
}
