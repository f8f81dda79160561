package classify

import (
	"regexp"
	"strings"
)

// Category buckets every activity unit falls into. Papers and ordinary
// messages are mutually exclusive: a paper never also counts as a message.
type Category string

const (
	CategoryLowValue Category = "low_value"
	CategoryPaper    Category = "paper"
	CategoryOrdinary Category = "ordinary"
)

// Attachment describes a file carried by an activity unit. Metadata only;
// content inspection is not available at this layer.
type Attachment struct {
	Name        string
	ContentType string
	SizeBytes   int64
}

// ActivityUnit is one piece of community content under classification.
// MessageID is the stable per-platform identifier used for de-duplication.
type ActivityUnit struct {
	MessageID   string
	AuthorID    string
	ChannelID   string
	Text        string
	Attachments []Attachment
}

// Result is the classification outcome. Confidence and QualityContribution
// are both on a 0-100 / 0-5 scale respectively.
type Result struct {
	Category            Category
	Confidence          int
	QualityContribution int
}

const (
	confidenceAttachment = 100
	confidenceDOI        = 100
	confidenceDomain     = 90
	confidenceWeakText   = 60
	confidenceLowValue   = 100
	confidenceOrdinary   = 50

	minMeaningfulLength = 5
	maxTrivialWordCount = 2
	ordinaryQualityCap  = 5
)

var lowValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(hi|hiya|hey|hello|yo|sup|gm|gn|good (morning|night|evening))!*$`),
	regexp.MustCompile(`^(ok|okay|k|kk|yes|yep|yeah|no|nope|nah|sure|cool|nice|great|same|this|true|fr|lmao|lol|rofl|haha+|hehe+)!*$`),
	regexp.MustCompile(`^(thanks|thank you|thx|ty|tysm|np|yw|welcome|congrats|gg|wp)!*$`),
	regexp.MustCompile(`^(lol thanks|ok thanks|thanks lol|haha thanks)$`),
	regexp.MustCompile(`^[\p{So}\p{Sk}\s]+$`), // emoji / symbol only
	regexp.MustCompile(`^[[:punct:]\s]+$`),
}

var (
	doiPattern       = regexp.MustCompile(`(?i)\b10\.\d{4,9}/\S+|doi\.org/\S+`)
	urlPattern       = regexp.MustCompile(`(?i)https?://([^/\s]+)`)
	quotedSpan       = regexp.MustCompile(`["\x{201c}]([^"\x{201d}]{15,})["\x{201d}]`)
	authorshipMarker = regexp.MustCompile(`(?i)\bby\b|\bauthors?:|\bet al\.?|\band colleagues\b`)
	yearToken        = regexp.MustCompile(`\(?\b(19|20)\d{2}\b\)?`)
	pdfNameToken     = regexp.MustCompile(`(?i)^\S+\.pdf$`)
)

// paperDomains is the allow-list of scientific publishing hosts. Matching is
// suffix-based so subdomains qualify.
var paperDomains = []string{
	"arxiv.org",
	"biorxiv.org",
	"medrxiv.org",
	"nature.com",
	"science.org",
	"sciencedirect.com",
	"springer.com",
	"link.springer.com",
	"wiley.com",
	"onlinelibrary.wiley.com",
	"ieee.org",
	"acm.org",
	"plos.org",
	"pnas.org",
	"cell.com",
	"nih.gov",
	"jstor.org",
	"semanticscholar.org",
	"researchgate.net",
	"ssrn.com",
}

// journalVocabulary is the fixed token set for the weakest text-only rule.
var journalVocabulary = []string{
	"nature", "science", "cell", "lancet", "neuron", "arxiv", "biorxiv",
	"elsevier", "springer", "wiley", "ieee", "acm", "plos", "pnas", "jstor",
	"journal", "proceedings", "preprint", "review letters", "frontiers",
}

// Classify maps one activity unit to a category with a confidence score.
// It is pure: same input always yields the same result, and it never fails.
// Malformed evidence is treated as absent and the unit degrades to ORDINARY
// or LOW_VALUE.
func Classify(activity ActivityUnit) Result {
	text := strings.TrimSpace(activity.Text)
	normalized := strings.ToLower(text)

	// Strong paper evidence is checked before the low-value filter so that a
	// bare document reference ("2504.11091.pdf", a DOI on its own line) is not
	// discarded as trivial chatter for being short.
	if result, ok := detectPaper(normalized, activity.Attachments); ok {
		return result
	}

	if isLowValue(normalized) {
		return Result{Category: CategoryLowValue, Confidence: confidenceLowValue}
	}

	quality := len(text) / 20
	if quality > ordinaryQualityCap {
		quality = ordinaryQualityCap
	}
	return Result{
		Category:            CategoryOrdinary,
		Confidence:          confidenceOrdinary,
		QualityContribution: quality,
	}
}

func isLowValue(normalized string) bool {
	if len(normalized) < minMeaningfulLength {
		return true
	}
	for _, pattern := range lowValuePatterns {
		if pattern.MatchString(normalized) {
			return true
		}
	}
	return len(strings.Fields(normalized)) <= maxTrivialWordCount
}

// detectPaper applies the escalating-evidence policy, strongest rule first.
func detectPaper(normalized string, attachments []Attachment) (Result, bool) {
	for _, attachment := range attachments {
		if strings.HasSuffix(strings.ToLower(strings.TrimSpace(attachment.Name)), ".pdf") {
			return Result{Category: CategoryPaper, Confidence: confidenceAttachment}, true
		}
	}

	// A message whose entire text is a single pdf filename is treated as
	// attachment-grade evidence; the platform sometimes relays uploads as
	// bare filenames.
	if pdfNameToken.MatchString(normalized) {
		return Result{Category: CategoryPaper, Confidence: confidenceAttachment}, true
	}

	if doiPattern.MatchString(normalized) {
		return Result{Category: CategoryPaper, Confidence: confidenceDOI}, true
	}

	if hostMatchesPaperDomain(normalized) {
		return Result{Category: CategoryPaper, Confidence: confidenceDomain}, true
	}

	// Attachments that are not pdfs still go through the filename heuristic.
	for _, attachment := range attachments {
		score := ScoreDocument(attachment.Name, attachment.SizeBytes)
		if score.IsScientificPaper {
			return Result{Category: CategoryPaper, Confidence: score.Confidence}, true
		}
	}

	// Text-only detection is the weakest signal: all four corroborating
	// markers must be present simultaneously.
	if len(attachments) == 0 &&
		quotedSpan.MatchString(normalized) &&
		authorshipMarker.MatchString(normalized) &&
		yearToken.MatchString(normalized) &&
		containsAny(normalized, journalVocabulary) {
		return Result{Category: CategoryPaper, Confidence: confidenceWeakText}, true
	}

	return Result{}, false
}

func hostMatchesPaperDomain(text string) bool {
	for _, match := range urlPattern.FindAllStringSubmatch(text, -1) {
		host := strings.ToLower(match[1])
		for _, domain := range paperDomains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return true
			}
		}
	}
	return false
}

func containsAny(text string, vocabulary []string) bool {
	for _, token := range vocabulary {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
