package core

import "sort"

// ReportingContext identifies one configured statement catalog: a
// jurisdiction, an accounting standard, a system variant and a statement
// type.
type ReportingContext struct {
	CountryCode string        `json:"country_code"`
	Standard    string        `json:"standard"`
	System      SystemVariant `json:"system"`
	Statement   StatementType `json:"statement"`
}

// MappingRegistry is an immutable catalog of line mappings, built once at
// process start from an explicit configuration (YAML file, database, or the
// built-in defaults). There is no hidden global seeding.
//
// The registry does not police overlapping patterns between lines: the same
// account may feed both a detail line and a broader total line, or two
// misconfigured unrelated lines. Total lines are computed from their own
// patterns, not by summing children, so a total and its details can drift
// when patterns are misconfigured; the validation engine's coherence checks
// are the only safety net.
type MappingRegistry struct {
	mappings []LineMapping
}

// NewMappingRegistry builds a registry from the given mappings. The slice is
// copied and sorted; callers may keep or discard theirs.
func NewMappingRegistry(mappings []LineMapping) *MappingRegistry {
	sorted := make([]LineMapping, len(mappings))
	copy(sorted, mappings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	return &MappingRegistry{mappings: sorted}
}

// LinesFor returns the active mappings for a reporting context in display
// order. An empty result is valid: the assembler produces a zero-line
// statement and validation surfaces the configuration gap as a warning.
func (r *MappingRegistry) LinesFor(country, standard string, system SystemVariant, statement StatementType) []LineMapping {
	var out []LineMapping
	for _, m := range r.mappings {
		if !m.Active {
			continue
		}
		if m.CountryCode != country || m.Standard != standard {
			continue
		}
		if m.System != system || m.Statement != statement {
			continue
		}
		out = append(out, m)
	}
	return out
}

// TotalLines returns only the subtotal/total mappings of a context.
func (r *MappingRegistry) TotalLines(country, standard string, system SystemVariant, statement StatementType) []LineMapping {
	return filterByTotal(r.LinesFor(country, standard, system, statement), true)
}

// DetailLines returns only the leaf (non-total) mappings of a context.
func (r *MappingRegistry) DetailLines(country, standard string, system SystemVariant, statement StatementType) []LineMapping {
	return filterByTotal(r.LinesFor(country, standard, system, statement), false)
}

func filterByTotal(mappings []LineMapping, wantTotal bool) []LineMapping {
	var out []LineMapping
	for _, m := range mappings {
		if m.IsTotal == wantTotal {
			out = append(out, m)
		}
	}
	return out
}
