// file: internal/metadata/tagmap.go
// version: 1.2.0
// guid: c5e8f1a4-7b2d-4c9e-a3f6-8d0b2e4c6a8f

package metadata

import (
	"regexp"
	"strings"
)

// TagMapper converts source-site category and tag strings into host tags.
// The mapping table is user-editable configuration; a mapper is built once
// from it and is read-only afterwards, so it is safe for concurrent lookups.
type TagMapper struct {
	mapping        map[string][]string // lowercased source tag -> host tags
	categoryPrefix string
	delimiter      string
	passthrough    bool // keep unmapped item tags as-is
}

var categorySeparator = regexp.MustCompile(`\s*>\s*`)

// domestic/foreign top-level nodes carry no information about the book itself
var categoryRoot = regexp.MustCompile(`^\s*(국내도서|외국도서)\s*>\s*`)

// TagMapperOptions configures a TagMapper.
type TagMapperOptions struct {
	Mapping        map[string][]string
	CategoryPrefix string
	Delimiter      string // joins category path segments, default "."
	Passthrough    bool
}

// NewTagMapper builds a mapper from user configuration. Keys are matched
// case-insensitively.
func NewTagMapper(opts TagMapperOptions) *TagMapper {
	m := make(map[string][]string, len(opts.Mapping))
	for k, v := range opts.Mapping {
		m[strings.ToLower(strings.TrimSpace(k))] = v
	}
	delim := opts.Delimiter
	if delim == "" {
		delim = "."
	}
	return &TagMapper{
		mapping:        m,
		categoryPrefix: opts.CategoryPrefix,
		delimiter:      delim,
		passthrough:    opts.Passthrough,
	}
}

// MapCategory converts one category breadcrumb ("국내도서 > 소설 > 한국소설")
// into a single host tag ("소설" + delimiter + "한국소설", with the configured
// prefix). Empty input yields "".
func (tm *TagMapper) MapCategory(category string) string {
	category = strings.ReplaceAll(category, "\u00a0", " ")
	category = categoryRoot.ReplaceAllString(category, "")
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	parts := categorySeparator.Split(category, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return tm.categoryPrefix + strings.Join(parts, tm.delimiter)
}

// MapTags runs item tags through the mapping dictionary. Mapped tags are
// expanded, duplicates removed, original order preserved. Unmapped tags are
// kept only in passthrough mode. The same input always yields the same output.
func (tm *TagMapper) MapTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}
	for _, t := range tags {
		mapped, ok := tm.mapping[strings.ToLower(strings.TrimSpace(t))]
		if ok {
			for _, m := range mapped {
				add(m)
			}
		} else if tm.passthrough {
			add(t)
		}
	}
	return out
}

// Apply produces the final tag list for a record: mapped categories first,
// then mapped item tags, deduplicated.
func (tm *TagMapper) Apply(categories, itemTags []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range categories {
		tag := tm.MapCategory(c)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	for _, t := range tm.MapTags(itemTags) {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
