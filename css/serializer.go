package css

import (
	"strings"
)

// SerializeOptions controls the Serializer's output shape.
type SerializeOptions struct {
	// Compact writes no line breaks: the whole stylesheet, nested blocks
	// included, comes out on a single line, with declarations joined by
	// single spaces. When false, each declaration gets its own line with
	// two-space indentation.
	Compact bool
}

// Serialize renders sheet as canonical CSS text honoring media grouping
// and, when HasNesting is set, unresolving nested selectors back to their
// `&`-relative or implicit-descendant form.
func Serialize(sheet *Stylesheet, opts SerializeOptions) string {
	var sb strings.Builder
	if sheet.Charset != "" {
		sb.WriteString(`@charset "` + sheet.Charset + `";`)
		sb.WriteString(lineBreak(opts))
	}

	symbolByRule := buildMediaIndex(sheet)

	var parentToChildren map[int][]*Rule
	if sheet.HasNesting {
		parentToChildren = buildNestingIndex(sheet)
	}

	emitted := make(map[int]bool)
	i := 0
	items := sheet.Items
	for i < len(items) {
		item := items[i]
		if item.AtRule != nil {
			writeAtRule(&sb, item.AtRule, opts)
			i++
			continue
		}
		r := item.Rule
		if r == nil {
			i++
			continue
		}
		if emitted[r.ID] {
			i++
			continue
		}
		if r.ParentRuleID != nil {
			// Nested rules are emitted recursively from their top-level
			// parent; skip them here.
			i++
			continue
		}

		symbol := symbolByRule[r.ID]
		if symbol == "" {
			writeRuleTree(&sb, r, parentToChildren, emitted, opts, 0)
			emitted[r.ID] = true
			i++
			continue
		}

		// Group contiguous rules sharing the same top-level media symbol.
		group := []*Rule{r}
		emitted[r.ID] = true
		j := i + 1
		for j < len(items) {
			next := items[j].Rule
			if next == nil || next.ParentRuleID != nil || symbolByRule[next.ID] != symbol {
				break
			}
			group = append(group, next)
			emitted[next.ID] = true
			j++
		}
		sb.WriteString("@media " + symbol + " {")
		sb.WriteString(lineBreak(opts))
		for _, gr := range group {
			writeRuleTree(&sb, gr, parentToChildren, emitted, opts, indentUnit(opts))
		}
		sb.WriteString("}")
		sb.WriteString(lineBreak(opts))
		i = j
	}
	return sb.String()
}

func lineBreak(opts SerializeOptions) string {
	if opts.Compact {
		return ""
	}
	return "\n"
}

func indentUnit(opts SerializeOptions) int {
	if opts.Compact {
		return 0
	}
	return 1
}

// buildMediaIndex inverts Stylesheet.MediaIndex into a rule-id -> chosen
// symbol map. On collision (a rule registered under more than one media
// symbol) the textually longer symbol wins, matching the original's
// observed (if accidental) tie-break.
func buildMediaIndex(sheet *Stylesheet) map[int]string {
	byRule := make(map[int]string)
	for symbol, ids := range sheet.MediaIndex {
		for _, id := range ids {
			if cur, ok := byRule[id]; !ok || len(symbol) > len(cur) {
				byRule[id] = symbol
			}
		}
	}
	return byRule
}

func buildNestingIndex(sheet *Stylesheet) map[int][]*Rule {
	out := make(map[int][]*Rule)
	for _, r := range sheet.Rules() {
		if r.ParentRuleID != nil {
			out[*r.ParentRuleID] = append(out[*r.ParentRuleID], r)
		}
	}
	return out
}

// writeRuleTree emits r and, recursively, every descendant registered in
// children, each nested inside its own parent's braces with its selector
// unresolved relative to the immediate parent.
func writeRuleTree(sb *strings.Builder, r *Rule, children map[int][]*Rule, emitted map[int]bool, opts SerializeOptions, indent int) {
	writeIndent(sb, indent)
	sb.WriteString(r.Selector + " {")
	sb.WriteString(lineBreak(opts))
	writeDeclarations(sb, r.Declarations, opts, indent+1)
	writeNestedChildren(sb, r, children, emitted, opts, indent+1)
	writeIndent(sb, indent)
	sb.WriteString("}")
	sb.WriteString(lineBreak(opts))
}

func writeNestedChildren(sb *strings.Builder, parent *Rule, children map[int][]*Rule, emitted map[int]bool, opts SerializeOptions, indent int) {
	for _, child := range children[parent.ID] {
		if emitted[child.ID] {
			continue
		}
		emitted[child.ID] = true
		sel := unresolveSelector(parent.Selector, child.Selector, child.NestingStyle)
		writeIndent(sb, indent)
		sb.WriteString(sel + " {")
		sb.WriteString(lineBreak(opts))
		writeDeclarations(sb, child.Declarations, opts, indent+1)
		writeNestedChildren(sb, child, children, emitted, opts, indent+1)
		writeIndent(sb, indent)
		sb.WriteString("}")
		sb.WriteString(lineBreak(opts))
	}
}

// unresolveSelector rewrites a fully-qualified nested child selector back
// to its source-relative form: `&`-prefixed for explicit nesting, bare
// descendant for implicit.
func unresolveSelector(parentSelector, childSelector string, style NestingStyle) string {
	switch style {
	case NestingStyleExplicit:
		if strings.HasPrefix(childSelector, parentSelector) {
			return "&" + strings.TrimPrefix(childSelector, parentSelector)
		}
		return childSelector
	default:
		prefix := parentSelector + " "
		if strings.HasPrefix(childSelector, prefix) {
			return strings.TrimPrefix(childSelector, prefix)
		}
		return childSelector
	}
}

func writeDeclarations(sb *strings.Builder, decls []Declaration, opts SerializeOptions, indent int) {
	if opts.Compact {
		parts := make([]string, 0, len(decls))
		for _, d := range decls {
			parts = append(parts, declarationText(d))
		}
		sb.WriteString(strings.Join(parts, " "))
		if len(parts) > 0 {
			sb.WriteString(" ")
		}
		return
	}
	for _, d := range decls {
		writeIndent(sb, indent)
		sb.WriteString(declarationText(d))
		sb.WriteString("\n")
	}
}

func declarationText(d Declaration) string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important;"
	}
	return d.Property + ": " + d.Value + ";"
}

func writeIndent(sb *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		sb.WriteString("  ")
	}
}

func writeAtRule(sb *strings.Builder, a *AtRule, opts SerializeOptions) {
	sb.WriteString(a.Selector + " {")
	sb.WriteString(lineBreak(opts))
	switch a.Kind {
	case AtRuleKindRules:
		for _, r := range a.Rules {
			writeIndent(sb, indentUnit(opts))
			sb.WriteString(r.Selector + " {")
			sb.WriteString(lineBreak(opts))
			writeDeclarations(sb, r.Declarations, opts, indentUnit(opts)+1)
			writeIndent(sb, indentUnit(opts))
			sb.WriteString("}")
			sb.WriteString(lineBreak(opts))
		}
	default:
		writeDeclarations(sb, a.Declarations, opts, indentUnit(opts))
	}
	sb.WriteString("}")
	sb.WriteString(lineBreak(opts))
}
