// Package mapreduce tallies modifier tags across a batch of analyses.
package mapreduce

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/veritas/models"
)

// Map counts the modifier tags of a single result. Modifiers with a zero
// change still count; they record that a rule fired.
func Map(res models.AnalysisResult) map[string]int {
	counts := make(map[string]int, len(res.Modifiers))
	for _, m := range res.Modifiers {
		if m.Tag != "" {
			counts[m.Tag]++
		}
	}
	return counts
}

// Reduce aggregates a slice of tag count maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for tag, count := range counts {
			finalResults[tag] += count
		}
	}

	return finalResults
}

// TopTags returns the n most frequent tags formatted as "tag:count",
// ties broken alphabetically.
func TopTags(counts map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	ss := make([]kv, 0, len(counts))
	for k, v := range counts {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := min(max(n, 0), len(ss))
	tags := make([]string, limit)
	for i := 0; i < limit; i++ {
		tags[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}
	return tags
}
