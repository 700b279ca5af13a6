// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Article is one row of the research-article metadata table.
// Empty cells in the source are missing values, so each nullable column
// carries a Has* flag next to its value.
type Article struct {
	// Year is the publication year. Valid only when HasYear is true.
	Year    int  `json:"year" yaml:"year"`
	HasYear bool `json:"-" yaml:"-"`

	// ResearchArea is the category code or, after cleaning, its display label.
	ResearchArea    string `json:"research_area" yaml:"research_area"`
	HasResearchArea bool   `json:"-" yaml:"-"`

	// Keywords is the raw keyword cell, tokens separated by ';' or ','.
	Keywords    string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	HasKeywords bool   `json:"-" yaml:"-"`

	// Authors is the raw author cell, names separated by ','.
	Authors    string `json:"authors,omitempty" yaml:"authors,omitempty"`
	HasAuthors bool   `json:"-" yaml:"-"`
}

// Count pairs a label with the number of times it occurred.
type Count struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// YearCount is the number of articles published in one year.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// AuthorTopic is the number of articles an author published in one research area.
type AuthorTopic struct {
	Author       string `json:"author" yaml:"author"`
	Topic        string `json:"topic" yaml:"topic"`
	Publications int    `json:"publications" yaml:"publications"`
}
