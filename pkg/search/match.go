package search

import (
	"strings"

	"github.com/pluqqy/packsmith/pkg/tags"
)

// Item is the searchable view of one document
type Item struct {
	Kind   string
	Folder string
	ID     string
	Name   string
	Tags   []string
	Text   string
}

// Matches reports whether item satisfies the query. An empty query matches
// everything.
func (q *Query) Matches(item Item) bool {
	if len(q.Conditions) == 0 {
		return true
	}

	result := q.Conditions[0].matches(item)
	for i, op := range q.Logic {
		next := q.Conditions[i+1].matches(item)
		switch op {
		case OperatorOR:
			result = result || next
		default:
			result = result && next
		}
	}
	return result
}

func (c Condition) matches(item Item) bool {
	var ok bool
	switch c.Field {
	case FieldTag:
		for _, t := range item.Tags {
			if tags.Matches(t, c.Value) {
				ok = true
				break
			}
		}
	case FieldKind:
		ok = strings.EqualFold(item.Kind, c.Value) || strings.EqualFold(item.Folder, c.Value)
	case FieldName:
		ok = containsFold(item.Name, c.Value)
	case FieldText:
		ok = containsFold(item.Name, c.Value) || containsFold(item.Text, c.Value)
	}
	return ok != c.Negate
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Filter returns the items matching query, keeping their order.
func Filter(query *Query, items []Item) []Item {
	var matched []Item
	for _, item := range items {
		if query.Matches(item) {
			matched = append(matched, item)
		}
	}
	return matched
}
