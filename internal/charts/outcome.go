package charts

// Chart names, in render order.
const (
	ChartDistribution   = "distribution"
	ChartTimeline       = "timeline"
	ChartKeywords       = "keywords"
	ChartEvolution      = "evolution"
	ChartAuthors        = "authors"
	ChartSpecialization = "specialization"
)

// Outcome reports what one chart transform did: either the files it wrote,
// or that it skipped rendering because its aggregate was empty.
type Outcome struct {
	Chart   string   `json:"chart" yaml:"chart"`
	Files   []string `json:"files,omitempty" yaml:"files,omitempty"`
	Skipped bool     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Reason  string   `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func rendered(chart string, files ...string) Outcome {
	return Outcome{Chart: chart, Files: files}
}

func skipped(chart, reason string) Outcome {
	return Outcome{Chart: chart, Skipped: true, Reason: reason}
}
