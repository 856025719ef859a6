package mapreduce

import (
	"reflect"
	"testing"

	"github.com/dtnitsch/veritas/models"
)

func result(tags ...string) models.AnalysisResult {
	var res models.AnalysisResult
	for _, tag := range tags {
		res.Modifiers = append(res.Modifiers, models.ScoreModifier{Tag: tag})
	}
	return res
}

func TestMapReduce(t *testing.T) {
	counts := Reduce([]map[string]int{
		Map(result("author-missing", "sources-missing", "date-missing")),
		Map(result("author-missing", "date-present")),
		Map(result("author-missing", "sources-missing", "")),
	})

	want := map[string]int{
		"author-missing":  3,
		"sources-missing": 2,
		"date-missing":    1,
		"date-present":    1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Reduce() = %v, want %v", counts, want)
	}
}

func TestTopTags(t *testing.T) {
	counts := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"top two", 2, []string{"c:5", "a:2"}},
		{"more than available", 10, []string{"c:5", "a:2", "b:2", "d:1"}},
		{"zero", 0, []string{}},
		{"negative", -1, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopTags(counts, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopTags(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}
