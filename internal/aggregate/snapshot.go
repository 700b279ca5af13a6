package aggregate

import (
	"github.com/pdiddy/research-charts/internal/dataset"
	"github.com/pdiddy/research-charts/pkg/types"
)

// Snapshot gathers every aggregate view of a dataset, trimmed the same way
// the charts trim them.
type Snapshot struct {
	Source       string              `json:"source" yaml:"source"`
	Stats        dataset.Stats       `json:"stats" yaml:"stats"`
	Areas        []types.Count       `json:"areas" yaml:"areas"`
	Years        []types.YearCount   `json:"years" yaml:"years"`
	Keywords     []types.Count       `json:"keywords" yaml:"keywords"`
	Evolution    *Evolution          `json:"evolution" yaml:"evolution"`
	Authors      []types.Count       `json:"authors" yaml:"authors"`
	AuthorTopics []types.AuthorTopic `json:"author_topics" yaml:"author_topics"`
}

// Compute builds the Snapshot for ds.
func Compute(ds *dataset.Dataset, cfg types.ChartsConfig) Snapshot {
	articles := ds.Articles()
	return Snapshot{
		Source:       ds.Source(),
		Stats:        ds.Stats(),
		Areas:        AreaCounts(articles),
		Years:        YearCounts(articles, cfg.MinYear),
		Keywords:     Top(KeywordCounts(articles), cfg.TopKeywords),
		Evolution:    AreaEvolution(articles, cfg.TopAreas),
		Authors:      Top(AuthorCounts(articles), cfg.TopAuthors),
		AuthorTopics: AuthorTopics(articles, cfg.TopBubbleAuthors),
	}
}
