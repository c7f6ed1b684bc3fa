package billimport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/bill-center/backend/internal/domain/entity"
)

// ParseOutcome is the result of reading a completion reply: ParsedSuggestions or ParseFailure.
type ParseOutcome interface {
	parseOutcome()
}

// ParsedSuggestions holds the suggestions that could be decoded.
type ParsedSuggestions struct {
	Items []entity.Suggestion
}

// ParseFailure means the reply was not JSON at all.
type ParseFailure struct {
	Reason string
	Err    error
}

func (ParsedSuggestions) parseOutcome() {}
func (ParseFailure) parseOutcome()      {}

// flexNumber accepts a JSON number or a numeric string.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	*n = flexNumber(v)
	return nil
}

type wireSuggestion struct {
	Index        *flexNumber `json:"index"`
	CategoryID   *string     `json:"categoryId"`
	CategoryName *string     `json:"categoryName"`
	TagIDs       []string    `json:"tagIds"`
	TagNames     []string    `json:"tagNames"`
	Confidence   *flexNumber `json:"confidence"`
	Reason       string      `json:"reason"`
}

// ParseSuggestions reads a completion reply. The reply may be wrapped in a markdown
// fence and may be a bare array, an object with a suggestions or results array,
// or a single suggestion object. Elements without a usable index are dropped.
func ParseSuggestions(reply string) ParseOutcome {
	content := stripCodeFence(reply)
	if content == "" {
		return ParseFailure{Reason: "empty reply"}
	}

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return ParseFailure{Reason: "reply is not valid JSON", Err: err}
	}

	elements, err := suggestionElements(raw)
	if err != nil {
		return ParseFailure{Reason: "reply is not a suggestion list", Err: err}
	}

	items := make([]entity.Suggestion, 0, len(elements))
	for _, element := range elements {
		var w wireSuggestion
		if err := json.Unmarshal(element, &w); err != nil || w.Index == nil {
			continue
		}
		index := float64(*w.Index)
		if index != math.Trunc(index) {
			continue
		}
		items = append(items, w.toSuggestion(int(index)))
	}

	return ParsedSuggestions{Items: items}
}

func (w wireSuggestion) toSuggestion(index int) entity.Suggestion {
	s := entity.Suggestion{
		Index:    index,
		TagIDs:   w.TagIDs,
		TagNames: w.TagNames,
		Reason:   w.Reason,
	}
	if w.CategoryID != nil {
		s.CategoryID = strings.TrimSpace(*w.CategoryID)
	}
	if w.CategoryName != nil {
		s.CategoryName = strings.TrimSpace(*w.CategoryName)
	}
	if w.Confidence != nil {
		c := float64(*w.Confidence)
		s.Confidence = &c
	}
	return s
}

// suggestionElements normalizes the accepted reply shapes to a list of elements.
// The input is already known to be valid JSON.
func suggestionElements(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, err
		}
		for _, key := range []string{"suggestions", "results"} {
			var list []json.RawMessage
			if value, ok := fields[key]; ok && json.Unmarshal(value, &list) == nil {
				return list, nil
			}
		}
		return []json.RawMessage{trimmed}, nil
	default:
		// A scalar or null is valid JSON that carries no suggestions.
		return []json.RawMessage{}, nil
	}
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(reply string) string {
	content := strings.TrimSpace(reply)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if len(content) >= 4 && strings.EqualFold(content[:4], "json") {
		content = content[4:]
	}
	content = strings.TrimSpace(content)
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// MergeSuggestions applies suggestions to the rows addressed by pending, where a
// suggestion's index is a position in pending. A category is only set on a row
// without one and tags only on a row without any. Suggested ids must exist in the
// catalog and a category must share the row's direction; names are used when ids do not match.
// It returns how many rows changed.
func MergeSuggestions(rows []*entity.ParsedRow, pending []int, suggestions []entity.Suggestion, catalog *Catalog) int {
	changed := make(map[int]bool)

	for _, s := range suggestions {
		if s.Index < 0 || s.Index >= len(pending) {
			continue
		}
		rowIndex := pending[s.Index]
		row := rows[rowIndex]
		applied := false

		if row.NeedsCategory() {
			if id, ok := suggestedCategory(s, row.Direction, catalog); ok {
				row.CategoryID = &id
				applied = true
			}
		}

		if row.NeedsTags() {
			if ids := suggestedTags(s, catalog); len(ids) > 0 {
				row.AddTagIDs(ids...)
				applied = true
			}
		}

		if applied {
			row.Advice = &entity.EnrichmentAdvice{
				Confidence: s.Confidence,
				Reason:     s.Reason,
			}
			changed[rowIndex] = true
		}
	}

	return len(changed)
}

func suggestedCategory(s entity.Suggestion, direction entity.Direction, catalog *Catalog) (uuid.UUID, bool) {
	if id, err := uuid.Parse(s.CategoryID); err == nil {
		if cat, ok := catalog.Category(id); ok && cat.Direction == direction {
			return cat.ID, true
		}
	}
	if cat, ok := catalog.findCategoryByName(s.CategoryName, direction); ok {
		return cat.ID, true
	}
	return uuid.Nil, false
}

func suggestedTags(s entity.Suggestion, catalog *Catalog) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.TagIDs))
	for _, raw := range s.TagIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		if _, ok := catalog.Tag(id); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) > 0 {
		return ids
	}

	for _, name := range s.TagNames {
		if tag, ok := catalog.findTag(strings.TrimSpace(name)); ok {
			ids = append(ids, tag.ID)
		}
	}
	return ids
}
