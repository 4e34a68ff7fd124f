// Package search parses document queries such as
//
//	tag:undead NOT kind:map "fire rod"
//
// and matches them against the documents of a pack.
package search

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType is the document field a condition looks at
type FieldType string

const (
	FieldTag  FieldType = "tag"
	FieldKind FieldType = "kind"
	FieldName FieldType = "name"
	FieldText FieldType = "text"
)

// Operator joins two conditions
type Operator string

const (
	OperatorAND Operator = "AND"
	OperatorOR  Operator = "OR"
)

// Condition is a single field test
type Condition struct {
	Field  FieldType
	Value  string
	Negate bool
}

// Query is a parsed search. Logic[i] joins Conditions[i] and
// Conditions[i+1]; conditions are combined left to right.
type Query struct {
	Conditions []Condition
	Logic      []Operator
	Raw        string
}

// Parser handles parsing of search queries
type Parser struct {
	fieldPattern  *regexp.Regexp
	quotedPattern *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:  regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern: regexp.MustCompile(`^"([^"]*)"$`),
	}
}

// Parse parses a search query string into a Query
func (p *Parser) Parse(input string) (*Query, error) {
	query := &Query{
		Raw:        input,
		Conditions: []Condition{},
		Logic:      []Operator{},
	}

	tokens, err := p.tokenize(input)
	if err != nil {
		return nil, err
	}
	if err := p.parseTokens(tokens, query); err != nil {
		return nil, err
	}
	return query, nil
}

// tokenize splits the input on spaces outside quotes
func (p *Parser) tokenize(input string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ' ' && !inQuotes:
			flush()
		case (r == '(' || r == ')') && !inQuotes:
			return nil, fmt.Errorf("grouping with parentheses is not supported")
		default:
			current.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in query: %s", input)
	}
	flush()

	return tokens, nil
}

func (p *Parser) parseTokens(tokens []string, query *Query) error {
	negate := false
	expectCondition := true

	for _, token := range tokens {
		switch strings.ToUpper(token) {
		case "AND", "OR":
			if expectCondition {
				return fmt.Errorf("unexpected operator %s", token)
			}
			query.Logic = append(query.Logic, Operator(strings.ToUpper(token)))
			expectCondition = true
			continue
		case "NOT":
			if negate {
				return fmt.Errorf("NOT cannot be repeated")
			}
			negate = true
			continue
		}

		cond, err := p.parseCondition(token)
		if err != nil {
			return err
		}
		cond.Negate = negate
		negate = false

		// Adjacent conditions are joined with AND.
		if !expectCondition {
			query.Logic = append(query.Logic, OperatorAND)
		}
		query.Conditions = append(query.Conditions, cond)
		expectCondition = false
	}

	if negate {
		return fmt.Errorf("NOT operator requires a condition")
	}
	if expectCondition && len(query.Logic) > 0 {
		return fmt.Errorf("query ends with an operator")
	}
	return nil
}

func (p *Parser) parseCondition(token string) (Condition, error) {
	matches := p.fieldPattern.FindStringSubmatch(token)
	if matches == nil {
		return Condition{Field: FieldText, Value: p.unquote(token)}, nil
	}

	value := p.unquote(matches[2])
	switch field := FieldType(strings.ToLower(matches[1])); field {
	case FieldTag, FieldKind, FieldName, FieldText:
		return Condition{Field: field, Value: value}, nil
	default:
		return Condition{}, fmt.Errorf("unknown field: %s", matches[1])
	}
}

func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}
