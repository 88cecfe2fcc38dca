package epicdb

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
)

// Search returns up to limit materials ranked by fuzzy match of the
// query against material names and categories. A limit of zero or less
// means no limit.
func (db *DB) Search(query string, limit int) []epic.Material {
	ranks := fuzzy.RankFindNormalizedFold(query, db.corpus)
	if len(ranks) == 0 {
		// Reordered words such as "glass float" do not match as a
		// whole. Retry the word subqueries and keep the last that
		// matches.
		for _, subquery := range subqueries(query) {
			if subranks := fuzzy.RankFindNormalizedFold(subquery, db.corpus); len(subranks) > 0 {
				ranks = subranks
			}
		}
	}
	sort.Sort(ranks)

	if limit <= 0 || limit > len(ranks) {
		limit = len(ranks)
	}

	materials := make([]epic.Material, 0, limit)
	for _, rank := range ranks[:limit] {
		materials = append(materials, db.materials[db.corpusIDs[rank.OriginalIndex]])
	}

	slog.Debug("fuzzy searched the materials corpus", "query", query, "matches", len(ranks))

	return materials
}

// Suggest returns up to limit material names close to the given one, for
// hinting after a failed lookup.
func (db *DB) Suggest(name string, limit int) []string {
	names := make([]string, 0, limit)
	for _, material := range db.Search(name, limit) {
		names = append(names, material.Name)
	}
	return names
}

// subqueries splits a query into growing word prefixes followed by the
// remaining single words. "foo bar baz" returns {"foo", "foo bar",
// "foo bar baz", "bar", "baz"}.
func subqueries(s string) []string {
	words := strings.Split(s, " ")
	subqueries := make([]string, 0, len(words)*2)
	for i, word := range words {
		if i > 0 {
			subqueries = append(subqueries, subqueries[i-1]+" "+word)
			continue
		}
		subqueries = append(subqueries, word)
	}
	subqueries = append(subqueries, words[1:]...)
	return subqueries
}
