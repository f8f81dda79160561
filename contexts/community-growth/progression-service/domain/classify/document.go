package classify

import (
	"regexp"
	"strings"
)

// DocumentScore is the standalone filename heuristic result, used when
// platform-level content inspection of an upload is unavailable.
type DocumentScore struct {
	Confidence        int
	IsScientificPaper bool
	Signals           []string
}

// The threshold is deliberately permissive: under-counting papers starves
// legitimate progress, so false negatives cost more than false positives.
const paperScoreThreshold = 30

const (
	// Plausible byte-size band for an academic pdf.
	minPlausiblePaperSize = 100 << 10 // 100 KiB
	maxPlausiblePaperSize = 50 << 20  // 50 MiB
)

var (
	arxivIDName    = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?\.pdf$`)
	authorYearName = regexp.MustCompile(`[a-z]+[_\-]?(19|20)\d{2}`)
	doiInName      = regexp.MustCompile(`10\.\d{4,9}`)
)

var scientificNameTokens = []string{
	"paper", "study", "analysis", "research", "journal", "preprint",
	"thesis", "dissertation", "proceedings", "survey", "review",
	"neural", "quantum", "genome", "protein", "clinical", "trial",
	"dataset", "benchmark", "arxiv", "doi",
}

var publisherNameTokens = []string{
	"nature", "springer", "elsevier", "wiley", "ieee", "acm", "plos",
	"pnas", "lancet", "frontiers",
}

var nonScientificNameTokens = []string{
	"invoice", "receipt", "resume", "cv_", "contract", "agreement",
	"statement", "quotation", "payslip", "itinerary",
}

// ScoreDocument estimates from filename and declared size alone whether an
// upload looks like a scientific paper. Deterministic and never fails;
// unusable metadata simply contributes no evidence.
func ScoreDocument(name string, sizeBytes int64) DocumentScore {
	normalized := strings.ToLower(strings.TrimSpace(name))
	score := DocumentScore{}
	if normalized == "" {
		return score
	}

	add := func(points int, signal string) {
		score.Confidence += points
		score.Signals = append(score.Signals, signal)
	}

	if arxivIDName.MatchString(normalized) {
		add(60, "arxiv_identifier")
	}
	if authorYearName.MatchString(normalized) {
		add(25, "author_year_pattern")
	}
	if doiInName.MatchString(normalized) {
		add(40, "doi_in_filename")
	}
	for _, token := range scientificNameTokens {
		if strings.Contains(normalized, token) {
			add(15, "scientific_token:"+token)
			break
		}
	}
	for _, token := range publisherNameTokens {
		if strings.Contains(normalized, token) {
			add(20, "publisher_token:"+token)
			break
		}
	}
	for _, token := range nonScientificNameTokens {
		if strings.Contains(normalized, token) {
			add(-40, "non_scientific_token:"+token)
			break
		}
	}
	if sizeBytes > 0 && (sizeBytes < minPlausiblePaperSize || sizeBytes > maxPlausiblePaperSize) {
		add(-20, "implausible_size")
	}

	if score.Confidence < 0 {
		score.Confidence = 0
	}
	if score.Confidence > 100 {
		score.Confidence = 100
	}
	score.IsScientificPaper = score.Confidence >= paperScoreThreshold
	return score
}
