package config

// Regex building blocks shared by the metric patterns. The amount group
// tolerates thousands separators; the scale group captures a magnitude
// suffix that is only applied when extraction.apply_scale is enabled.
const (
	amountGroup = `\s*\$?([0-9,]+(?:\.[0-9]+)?)`
	scaleGroup  = `\s*(million|thousand|billion)?`
	clauseGroup = `\s*[:\-]?\s*([^.]{50,200})`
)

// DefaultMetricPatterns returns the built-in financial metric patterns.
// Both the metric order and the pattern order within a metric matter: for
// each metric the patterns are tried in order and the first one that yields
// a parseable number wins.
func DefaultMetricPatterns() []MetricPattern {
	return []MetricPattern{
		{Name: "revenue", Patterns: []string{
			`total\s+revenue[s]?` + amountGroup + scaleGroup,
			`net\s+revenue[s]?` + amountGroup + scaleGroup,
			`revenue[s]?` + amountGroup + scaleGroup,
		}},
		{Name: "net_income", Patterns: []string{
			`net\s+income` + amountGroup + scaleGroup,
			`net\s+earnings` + amountGroup + scaleGroup,
		}},
		{Name: "total_assets", Patterns: []string{
			`total\s+assets` + amountGroup + scaleGroup,
		}},
		{Name: "cash_and_equivalents", Patterns: []string{
			`cash\s+and\s+cash\s+equivalents` + amountGroup + scaleGroup,
			`cash\s+and\s+equivalents` + amountGroup + scaleGroup,
		}},
		{Name: "research_development", Patterns: []string{
			`research\s+and\s+development` + amountGroup + scaleGroup,
			`r\s*&\s*d` + amountGroup + scaleGroup,
		}},
	}
}

// DefaultSignalPatterns returns the built-in business signal patterns. Each
// pattern captures a sentence fragment of 50 to 200 characters following the
// trigger phrase.
func DefaultSignalPatterns() []SignalPattern {
	return []SignalPattern{
		{Name: "pipeline", Patterns: []string{
			`clinical\s+trial[s]?` + clauseGroup,
			`pipeline` + clauseGroup,
			`drug\s+development` + clauseGroup,
		}},
		{Name: "partnerships", Patterns: []string{
			`collaboration[s]?` + clauseGroup,
			`partnership[s]?` + clauseGroup,
			`licensing` + clauseGroup,
		}},
		{Name: "patents", Patterns: []string{
			`patent[s]?` + clauseGroup,
			`intellectual\s+property` + clauseGroup,
		}},
	}
}

// defaultBiotechKeywords returns the keywords swept for the keyword analysis.
func defaultBiotechKeywords() []string {
	return []string{
		"pipeline", "clinical trial", "FDA approval", "drug development",
		"therapeutic", "oncology", "rare disease", "gene therapy",
		"RNAi", "siRNA", "patent", "intellectual property",
		"collaboration", "partnership", "licensing", "milestone",
	}
}

// defaultPipelineKeywords returns the keywords swept for pipeline mentions.
func defaultPipelineKeywords() []string {
	return []string{
		"pipeline", "clinical trial", "phase", "FDA", "approval",
		"drug development", "therapeutic", "oncology", "rare disease",
		"RNAi", "siRNA", "gene therapy", "patent", "intellectual property",
	}
}

// defaultRiskKeywords returns the keywords swept for the risk analysis.
func defaultRiskKeywords() []string {
	return []string{
		"risk", "challenge", "uncertainty", "volatility", "competition",
		"regulatory", "clinical", "safety", "efficacy", "market",
		"reimbursement", "pricing", "intellectual property", "litigation",
	}
}

// defaultPartnershipKeywords returns the keywords swept for the partnership
// analysis.
func defaultPartnershipKeywords() []string {
	return []string{
		"collaboration", "partnership", "alliance", "agreement", "licensing",
		"milestone", "royalty", "joint venture", "strategic", "commercial",
	}
}
