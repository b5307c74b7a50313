package facets

import (
	"regexp"
	"strconv"
	"strings"

	"shoestore-assistant/internal/models"
)

var (
	betweenPattern = regexp.MustCompile(`\b(?:between|from)(?:\s+[$€£])?\s*(\d+(?:\.\d+)?)(?:\s+(?:and|to|-|–)|\s*-\s*)(?:[$€£])?\s*(\d+(?:\.\d+)?)\b`)
	underPattern   = regexp.MustCompile(`\b(?:under|less than|below|cheaper than|max|maximum)(?:\s+[$€£])?\s*(\d+(?:\.\d+)?)\b`)
	overPattern    = regexp.MustCompile(`\b(?:over|more than|above|min|minimum|at least)(?:\s+[$€£])?\s*(\d+(?:\.\d+)?)\b`)
	valuePattern   = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s+(?:dollars|euros|pounds|bucks)\b`)
	currencyPat    = regexp.MustCompile(`[$€£](\d+(?:\.\d+)?)\b`)
	aroundPattern  = regexp.MustCompile(`\b(?:in\s+range|around|about)(?:\s+[$€£])?\s*(\d+(?:\.\d+)?)\b`)
	bareNumberPat  = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\b`)

	// Tokens that disqualify a bare number from being read as a price.
	sizeUnitAfter = regexp.MustCompile(`^\s*(?:size|eu|us|uk)\b`)
)

// PriceSignal is an extracted price constraint. Soft marks a band inferred
// from a bare untagged number, the weakest cue; consumers may ignore soft
// signals when a stronger interpretation of the number exists (a model
// number, a size).
type PriceSignal struct {
	Range models.PriceRange
	Soft  bool
}

// ExtractPriceRange parses price constraints from the message. When several
// patterns match, an explicit "between N and M" range wins, then under/over
// bounds, then a currency-tagged or "around" value expanded to a ±20% band,
// then a bare number >= 10 with the same band. Returns nil when the message
// carries no price signal.
func ExtractPriceRange(message string) *PriceSignal {
	msg := strings.ToLower(message)

	if m := betweenPattern.FindStringSubmatch(msg); m != nil {
		min, err1 := strconv.ParseFloat(m[1], 64)
		max, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return &PriceSignal{Range: models.PriceRange{Min: &min, Max: &max}}
		}
	}

	var min, max *float64
	if m := underPattern.FindStringSubmatch(msg); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			max = &v
		}
	}
	if m := overPattern.FindStringSubmatch(msg); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			min = &v
		}
	}
	if min != nil || max != nil {
		return &PriceSignal{Range: models.PriceRange{Min: min, Max: max}}
	}

	for _, pattern := range []*regexp.Regexp{valuePattern, currencyPat, aroundPattern} {
		if m := pattern.FindStringSubmatch(msg); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return &PriceSignal{Range: softBand(v)}
			}
		}
	}

	// Bare number heuristic: a number not tagged with a currency symbol or
	// a size unit, large enough to plausibly be a price.
	for _, loc := range bareNumberPat.FindAllStringSubmatchIndex(msg, -1) {
		start, end := loc[2], loc[3]
		prefix := msg[:start]
		if strings.HasSuffix(prefix, "$") || strings.HasSuffix(prefix, "€") || strings.HasSuffix(prefix, "£") {
			continue
		}
		if sizeUnitAfter.MatchString(msg[end:]) {
			continue
		}
		v, err := strconv.ParseFloat(msg[start:end], 64)
		if err != nil || v < 10 {
			continue
		}
		return &PriceSignal{Range: softBand(v), Soft: true}
	}

	return nil
}

func softBand(price float64) models.PriceRange {
	min := price * 0.8
	if min < 1 {
		min = 1
	}
	max := price * 1.2
	return models.PriceRange{Min: &min, Max: &max}
}
