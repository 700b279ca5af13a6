package aggregate

import (
	"cmp"
	"slices"

	"github.com/pdiddy/research-charts/pkg/types"
)

// AuthorTopics counts publications per (author, research area) for the
// topN authors with the most author-area entries. Results are ordered by
// author, then area. Articles without usable authors contribute nothing.
//
// Building the pairs visits every author of every article once.
func AuthorTopics(articles []types.Article, topN int) []types.AuthorTopic {
	type pair struct{ author, topic string }

	authors := newCounter()
	pairs := make(map[pair]int)
	for _, a := range articles {
		if !a.HasAuthors {
			continue
		}
		for _, name := range AuthorNames(a.Authors) {
			authors.add(name)
			pairs[pair{name, a.ResearchArea}]++
		}
	}

	top := make(map[string]bool)
	for _, c := range Top(authors.ranked(), topN) {
		top[c.Label] = true
	}

	var out []types.AuthorTopic
	for p, n := range pairs {
		if top[p.author] {
			out = append(out, types.AuthorTopic{Author: p.author, Topic: p.topic, Publications: n})
		}
	}
	slices.SortFunc(out, func(a, b types.AuthorTopic) int {
		if c := cmp.Compare(a.Author, b.Author); c != 0 {
			return c
		}
		return cmp.Compare(a.Topic, b.Topic)
	})
	return out
}
