package css

import "strings"

// Declaration is a single `property: value` pair parsed from a rule or
// at-rule body. Property is ASCII-lowercased; Value retains source casing.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule is one selector plus its ordered declarations. Id is assigned
// monotonically by the owning Stylesheet and never reused. ParentRuleID is
// non-nil only for a rule captured from inside a nested selector block; it
// always refers to a rule at a strictly lower index, so the nesting forms a
// forest rather than a graph.
type Rule struct {
	ID           int
	Selector     string
	Declarations []Declaration
	ParentRuleID *int
	NestingStyle NestingStyle
	MediaTypes   []string

	specificity      int
	specificityKnown bool
}

// Specificity returns the cached specificity for the rule's selector,
// computing and storing it on first use.
func (r *Rule) Specificity() int {
	if !r.specificityKnown {
		r.specificity = ComputeSpecificity(r.Selector)
		r.specificityKnown = true
	}
	return r.specificity
}

// GetDeclaration returns the last declaration for property, mirroring
// cascade-time shadowing of repeated properties within one rule body.
func (r *Rule) GetDeclaration(property string) (Declaration, bool) {
	property = strings.ToLower(property)
	var found Declaration
	ok := false
	for _, d := range r.Declarations {
		if d.Property == property {
			found = d
			ok = true
		}
	}
	return found, ok
}

// AtRule is `@<name> <prelude> { ... }`, distinguishable from Rule by its
// own type. Content is either a nested rule sequence (@keyframes) or a flat
// declaration sequence (@font-face, @property, @page, @counter-style).
type AtRule struct {
	ID           int
	Selector     string
	Kind         AtRuleKind
	Rules        []Rule
	Declarations []Declaration
}

// Item is one top-level or nested entry in a Stylesheet: exactly one of
// Rule or AtRule is non-nil.
type Item struct {
	Rule   *Rule
	AtRule *AtRule
}

// Stylesheet is the full parsed and mutable representation of one CSS
// source document.
type Stylesheet struct {
	Items      []Item
	MediaIndex map[string][]int
	Charset    string
	LastRuleID int
	HasNesting bool
	Warnings   []string
}

// NewStylesheet returns an empty Stylesheet ready for incremental
// construction by the parser.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{
		MediaIndex: make(map[string][]int),
	}
}

// nextID returns the next monotonic rule id and advances the counter.
func (s *Stylesheet) nextID() int {
	s.LastRuleID++
	return s.LastRuleID
}

// AddRule appends rule to the stylesheet's rule index, assigning it an id
// and updating HasNesting and MediaIndex bookkeeping.
func (s *Stylesheet) AddRule(r Rule) *Rule {
	r.ID = s.nextID()
	if r.ParentRuleID != nil {
		s.HasNesting = true
	}
	s.Items = append(s.Items, Item{Rule: &r})
	stored := s.Items[len(s.Items)-1].Rule
	for _, mt := range r.MediaTypes {
		s.MediaIndex[mt] = append(s.MediaIndex[mt], stored.ID)
	}
	return stored
}

// AddAtRule appends an at-rule, assigning it an id from the same counter
// space as Rule ids.
func (s *Stylesheet) AddAtRule(a AtRule) *AtRule {
	a.ID = s.nextID()
	s.Items = append(s.Items, Item{AtRule: &a})
	return s.Items[len(s.Items)-1].AtRule
}

// Rules returns every top-level and nested Rule stored directly in Items,
// in source order. Rules held inside an AtRule (e.g. @keyframes) are not
// included; reach them through AtRules.
func (s *Stylesheet) Rules() []*Rule {
	var out []*Rule
	for i := range s.Items {
		if s.Items[i].Rule != nil {
			out = append(out, s.Items[i].Rule)
		}
	}
	return out
}

// AtRules returns every top-level AtRule in source order.
func (s *Stylesheet) AtRules() []*AtRule {
	var out []*AtRule
	for i := range s.Items {
		if s.Items[i].AtRule != nil {
			out = append(out, s.Items[i].AtRule)
		}
	}
	return out
}

// RulesByMedia returns the rules registered under a given media-type
// symbol, in source order.
func (s *Stylesheet) RulesByMedia(symbol string) []*Rule {
	ids := s.MediaIndex[symbol]
	if len(ids) == 0 {
		return nil
	}
	byID := make(map[int]*Rule, len(s.Items))
	for _, r := range s.Rules() {
		byID[r.ID] = r
	}
	out := make([]*Rule, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// AddWarning records a non-fatal, recoverable parse anomaly.
func (s *Stylesheet) AddWarning(msg string) {
	s.Warnings = append(s.Warnings, msg)
}
