package models

// Category ids the summary is built from.
const (
	CategoryPerformance   = "performance"
	CategoryAccessibility = "accessibility"
	CategoryBestPractices = "best-practices"
	CategorySEO           = "seo"
	CategoryPWA           = "pwa"
)

// SummaryCategories lists the categories in CSV column order.
var SummaryCategories = []string{
	CategoryPerformance,
	CategoryAccessibility,
	CategoryBestPractices,
	CategorySEO,
	CategoryPWA,
}

// Category holds one category of a report. Score is nil when the engine
// reported null or the field was absent.
type Category struct {
	ID    string   `json:"id,omitempty"`
	Title string   `json:"title,omitempty"`
	Score *float64 `json:"score"`
}

// Report is the subset of the audit engine's JSON output this tool consumes.
// Raw keeps the complete document as emitted so persisted artifacts lose nothing.
type Report struct {
	RequestedURL      string               `json:"requestedUrl"`
	FinalDisplayedURL string               `json:"finalDisplayedUrl,omitempty"`
	LighthouseVersion string               `json:"lighthouseVersion,omitempty"`
	FetchTime         string               `json:"fetchTime,omitempty"`
	Categories        map[string]*Category `json:"categories"`

	Raw []byte `json:"-"`
}

// Score returns the raw [0,1] score of a category and whether it was present.
func (r *Report) Score(category string) (float64, bool) {
	if r == nil || r.Categories == nil {
		return 0, false
	}
	c, ok := r.Categories[category]
	if !ok || c == nil || c.Score == nil {
		return 0, false
	}
	return *c.Score, true
}
