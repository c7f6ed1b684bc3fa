package billimport

import (
	"testing"

	"github.com/bill-center/backend/internal/domain/entity"
)

func TestParseSuggestions_Shapes(t *testing.T) {
	const array = `[{"index":0,"categoryId":"c1","tagIds":["t1"],"confidence":0.8,"reason":"coffee"},{"index":1,"categoryName":"Food"}]`

	tests := []struct {
		name          string
		reply         string
		expectedCount int
	}{
		{name: "bare array", reply: array, expectedCount: 2},
		{name: "json fence", reply: "```json\n" + array + "\n```", expectedCount: 2},
		{name: "plain fence", reply: "```\n" + array + "\n```", expectedCount: 2},
		{name: "fence with surrounding whitespace", reply: "  \n```JSON " + array + "```  ", expectedCount: 2},
		{name: "suggestions field", reply: `{"suggestions":` + array + `}`, expectedCount: 2},
		{name: "results field", reply: `{"results":` + array + `}`, expectedCount: 2},
		{name: "single object", reply: `{"index":0,"categoryName":"Food"}`, expectedCount: 1},
		{name: "string index", reply: `[{"index":"1","categoryName":"Food"}]`, expectedCount: 1},
		{name: "missing index dropped", reply: `[{"categoryName":"Food"},{"index":0}]`, expectedCount: 1},
		{name: "fractional index dropped", reply: `[{"index":0.5}]`, expectedCount: 0},
		{name: "malformed element dropped", reply: `[{"index":0,"tagIds":"oops"},{"index":1}]`, expectedCount: 1},
		{name: "empty array", reply: `[]`, expectedCount: 0},
		{name: "number", reply: `42`, expectedCount: 0},
		{name: "string", reply: `"none"`, expectedCount: 0},
		{name: "fenced null", reply: "```json\nnull\n```", expectedCount: 0},
		{name: "object without suggestions", reply: `{"note":"nothing to add"}`, expectedCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, ok := ParseSuggestions(tt.reply).(ParsedSuggestions)
			if !ok {
				t.Fatalf("expected ParsedSuggestions, got %#v", ParseSuggestions(tt.reply))
			}
			if len(outcome.Items) != tt.expectedCount {
				t.Errorf("expected %d suggestions, got %d", tt.expectedCount, len(outcome.Items))
			}
		})
	}
}

func TestParseSuggestions_FenceMatchesUnwrapped(t *testing.T) {
	const array = `[{"index":0,"categoryId":"c1","tagIds":["t1","t2"],"tagNames":["a"],"confidence":0.75,"reason":"r"}]`

	plain := ParseSuggestions(array).(ParsedSuggestions)
	fenced := ParseSuggestions("```json\n" + array + "\n```").(ParsedSuggestions)

	if len(plain.Items) != 1 || len(fenced.Items) != 1 {
		t.Fatalf("expected one suggestion each, got %d and %d", len(plain.Items), len(fenced.Items))
	}
	a, b := plain.Items[0], fenced.Items[0]
	if a.Index != b.Index || a.CategoryID != b.CategoryID || a.Reason != b.Reason ||
		len(a.TagIDs) != len(b.TagIDs) || *a.Confidence != *b.Confidence {
		t.Errorf("fenced reply decoded differently: %+v vs %+v", a, b)
	}
	if a.CategoryID != "c1" || *a.Confidence != 0.75 {
		t.Errorf("unexpected decoded values %+v", a)
	}
}

func TestParseSuggestions_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "empty", reply: ""},
		{name: "empty fence", reply: "```json\n```"},
		{name: "prose", reply: "Sorry, I cannot help with that."},
		{name: "truncated", reply: `[{"index":0`},
		{name: "unquoted word", reply: `none`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseSuggestions(tt.reply).(ParseFailure); !ok {
				t.Errorf("expected ParseFailure for %q", tt.reply)
			}
		})
	}
}

func TestMergeSuggestions(t *testing.T) {
	food := newCategory("Food", entity.DirectionExpense, nil)
	salary := newCategory("Salary", entity.DirectionIncome, nil)
	coffee := newTag("coffee")
	work := newTag("work")
	catalog := NewCatalog([]*entity.Category{food, salary}, []*entity.Tag{coffee, work})

	preset := newRow("2024-01-01", "10", "preset", entity.DirectionExpense)
	preset.CategoryID = &salary.ID
	preset.TagIDs = nil
	untouched := newRow("2024-01-02", "11", "complete", entity.DirectionExpense)
	untouched.CategoryID = &food.ID
	untouched.TagIDs = append(untouched.TagIDs, work.ID)
	empty := newRow("2024-01-03", "12", "empty", entity.DirectionExpense)
	wrongDirection := newRow("2024-01-04", "13", "income", entity.DirectionIncome)

	rows := []*entity.ParsedRow{preset, untouched, empty, wrongDirection}
	// untouched needs nothing, so the request only addresses rows 0, 2 and 3.
	pending := []int{0, 2, 3}
	confidence := 0.4

	suggestions := []entity.Suggestion{
		{Index: 0, CategoryID: food.ID.String(), TagIDs: []string{coffee.ID.String()}},
		{Index: 1, CategoryName: "Food", TagNames: []string{"work", "unknown"}, Confidence: &confidence, Reason: "looks like food"},
		{Index: 2, CategoryID: food.ID.String()},
		{Index: 7, CategoryID: food.ID.String()},
		{Index: -1, CategoryID: food.ID.String()},
	}

	applied := MergeSuggestions(rows, pending, suggestions, catalog)

	if applied != 2 {
		t.Errorf("expected 2 rows changed, got %d", applied)
	}
	if *preset.CategoryID != salary.ID {
		t.Error("expected a preset category never to be overwritten")
	}
	if len(preset.TagIDs) != 1 || preset.TagIDs[0] != coffee.ID {
		t.Errorf("expected the suggested tag on the preset row, got %v", preset.TagIDs)
	}
	if len(untouched.TagIDs) != 1 || *untouched.CategoryID != food.ID {
		t.Error("expected the complete row to be left alone")
	}
	if empty.CategoryID == nil || *empty.CategoryID != food.ID {
		t.Errorf("expected the name fallback to set Food, got %v", empty.CategoryID)
	}
	if len(empty.TagIDs) != 1 || empty.TagIDs[0] != work.ID {
		t.Errorf("expected only the known tag, got %v", empty.TagIDs)
	}
	if empty.Advice == nil || *empty.Advice.Confidence != 0.4 || empty.Advice.Reason != "looks like food" {
		t.Errorf("expected advice to be kept, got %+v", empty.Advice)
	}
	if wrongDirection.CategoryID != nil {
		t.Error("expected an expense category to be refused for an income row")
	}
}

func TestMergeSuggestions_NeverOverwritesTags(t *testing.T) {
	coffee := newTag("coffee")
	work := newTag("work")
	catalog := NewCatalog(nil, []*entity.Tag{coffee, work})

	row := newRow("2024-01-01", "10", "x", entity.DirectionExpense)
	suggestions := []entity.Suggestion{
		{Index: 0, TagIDs: []string{coffee.ID.String()}},
		{Index: 0, TagIDs: []string{work.ID.String()}},
	}

	MergeSuggestions([]*entity.ParsedRow{row}, []int{0}, suggestions, catalog)

	if len(row.TagIDs) != 1 || row.TagIDs[0] != coffee.ID {
		t.Errorf("expected only the first suggestion's tags, got %v", row.TagIDs)
	}
}
