package keywords

import "strings"

// Input selects keywords by job title category, optionally unioning in
// caller-supplied seed keywords.
type Input struct {
	JobTitle     string
	Industry     string
	SeedKeywords []string
	Count        int
}

const (
	// DefaultCount is the suggestion list size when the caller does not set one.
	DefaultCount = 10
	// maxSeedKeywords caps how many caller-supplied keywords are unioned in.
	maxSeedKeywords = 5
)

// categoryKeywords maps normalized job-title substrings to curated keyword sets.
var categoryKeywords = map[string][]string{
	"software engineer":    {"Java", "Python", "Agile", "Microservices", "API Design", "Scalability", "Problem Solving", "Data Structures", "Algorithms", "Cloud Computing"},
	"product manager":      {"Roadmap", "User Stories", "Agile", "Market Research", "Go-to-market Strategy", "Stakeholder Management", "Data Analysis", "Product Lifecycle", "Competitive Analysis", "Prioritization"},
	"data scientist":       {"Python", "R", "Machine Learning", "Statistical Modeling", "SQL", "Big Data", "Data Visualization", "Deep Learning", "NLP", "Experimentation"},
	"marketing specialist": {"SEO", "SEM", "Content Marketing", "Social Media", "Email Marketing", "Google Analytics", "Campaign Management", "Brand Strategy", "Lead Generation", "Digital Advertising"},
}

// categoryOrder keeps lookup deterministic across map iteration order.
var categoryOrder = []string{"software engineer", "product manager", "data scientist", "marketing specialist"}

// genericKeywords is the cross-functional fallback when no category matches.
var genericKeywords = []string{"Communication", "Teamwork", "Problem Solving", "Adaptability", "Leadership", "Technical Skills", "Project Management", "Customer-centric", "Innovative", "Results-oriented"}

// Suggest returns up to Count unique keywords, order-preserving by first
// occurrence. It never fails; with no category match it falls back to the
// generic set.
func Suggest(in Input) []string {
	count := in.Count
	if count <= 0 {
		count = DefaultCount
	}

	var keywords []string
	if title := strings.ToLower(strings.TrimSpace(in.JobTitle)); title != "" {
		for _, key := range categoryOrder {
			if strings.Contains(title, key) {
				keywords = append(keywords, categoryKeywords[key]...)
				break
			}
		}
	}

	if len(keywords) == 0 {
		keywords = append(keywords, genericKeywords...)
	}

	seeds := in.SeedKeywords
	if len(seeds) > maxSeedKeywords {
		seeds = seeds[:maxSeedKeywords]
	}
	keywords = append(keywords, seeds...)

	return dedupe(keywords, count)
}

func dedupe(keywords []string, limit int) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, limit)
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
		if len(out) == limit {
			break
		}
	}
	return out
}
