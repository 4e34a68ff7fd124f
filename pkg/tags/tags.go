// Package tags normalizes and validates entity tags and summarizes how a
// pack uses them.
package tags

import (
	"errors"
	"hash/fnv"
	"sort"
	"strings"
)

var (
	ErrEmptyTag        = errors.New("tag cannot be empty")
	ErrTagTooLong      = errors.New("tag cannot exceed 50 characters")
	ErrInvalidTagChars = errors.New("tag contains invalid characters")
)

// MaxLength is the longest tag accepted by Validate
const MaxLength = 50

// Palette holds the colors tags are rendered with
var Palette = []string{
	"#e74c3c",
	"#3498db",
	"#2ecc71",
	"#f39c12",
	"#9b59b6",
	"#1abc9c",
	"#e67e22",
	"#16a085",
	"#8e44ad",
	"#f1c40f",
	"#d35400",
	"#27ae60",
}

// Color returns a stable palette color for tag.
func Color(tag string) string {
	h := fnv.New32a()
	h.Write([]byte(Normalize(tag)))
	return Palette[int(h.Sum32()%uint32(len(Palette)))]
}

// Normalize lowercases tag, turns spaces into hyphens and drops every
// character other than letters, digits, '-' and '/'.
func Normalize(tag string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), " ", "-")

	var b strings.Builder
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '/' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks a tag as typed by the user.
func Validate(tag string) error {
	if strings.TrimSpace(tag) == "" {
		return ErrEmptyTag
	}
	if len(tag) > MaxLength {
		return ErrTagTooLong
	}
	for _, r := range tag {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '/' || r == ' ') {
			return ErrInvalidTagChars
		}
	}
	return nil
}

// Parent returns everything before the last '/' of a hierarchical tag.
func Parent(tag string) string {
	if i := strings.LastIndex(tag, "/"); i >= 0 {
		return tag[:i]
	}
	return ""
}

// Leaf returns the part after the last '/'.
func Leaf(tag string) string {
	return tag[strings.LastIndex(tag, "/")+1:]
}

// Matches reports whether tag equals want, or is nested below it.
func Matches(tag, want string) bool {
	tag, want = Normalize(tag), Normalize(want)
	return tag == want || strings.HasPrefix(tag, want+"/")
}

// Add returns list with tag appended, unless an equal tag is already there.
func Add(list []string, tag string) []string {
	normalized := Normalize(tag)
	for _, t := range list {
		if Normalize(t) == normalized {
			return list
		}
	}
	return append(append([]string{}, list...), normalized)
}

// Remove returns list without tag.
func Remove(list []string, tag string) []string {
	normalized := Normalize(tag)
	result := []string{}
	for _, t := range list {
		if Normalize(t) != normalized {
			result = append(result, t)
		}
	}
	return result
}

// Usage is how many documents carry a tag
type Usage struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// CountUsage counts each normalized tag once per document, most used first.
func CountUsage(documents [][]string) []Usage {
	counts := map[string]int{}
	for _, list := range documents {
		seen := map[string]bool{}
		for _, t := range list {
			normalized := Normalize(t)
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			counts[normalized]++
		}
	}

	usage := make([]Usage, 0, len(counts))
	for tag, count := range counts {
		usage = append(usage, Usage{Tag: tag, Count: count})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		return usage[i].Tag < usage[j].Tag
	})
	return usage
}
