package css

import (
	"github.com/jamescook/cssproc/utils/debug"
)

// treeWriter mirrors the teacher's own pattern (fb2.treeWriter,
// convert/kfx's debug tree) of embedding debug.TreeWriter and hanging
// one receiver method per node kind off it.
type treeWriter struct {
	*debug.TreeWriter
}

// Dump renders sheet as a readable tree for manual inspection: rules with
// their declarations, at-rules with their content, media tagging, and
// nesting relationships. It exists solely for debugging, the way the
// teacher's *FictionBook.String() and kfx debug dumps do — it is not part
// of the serialization contract.
func Dump(sheet *Stylesheet) string {
	if sheet == nil {
		return "<nil Stylesheet>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Stylesheet items=%d last_rule_id=%d has_nesting=%v", len(sheet.Items), sheet.LastRuleID, sheet.HasNesting)
	if sheet.Charset != "" {
		tw.Line(1, "charset=%q", sheet.Charset)
	}
	for _, w := range sheet.Warnings {
		tw.Line(1, "warning: %s", w)
	}
	for i := range sheet.Items {
		item := sheet.Items[i]
		switch {
		case item.Rule != nil:
			tw.rule(1, item.Rule)
		case item.AtRule != nil:
			tw.atRule(1, item.AtRule)
		}
	}
	return tw.String()
}

func (tw treeWriter) rule(depth int, r *Rule) {
	tw.Line(depth, "Rule#%d selector=%q specificity=%d media=%v", r.ID, r.Selector, r.Specificity(), r.MediaTypes)
	if r.ParentRuleID != nil {
		tw.Line(depth+1, "parent=#%d nesting=%s", *r.ParentRuleID, r.NestingStyle)
	}
	for _, d := range r.Declarations {
		tw.declaration(depth+1, d)
	}
}

func (tw treeWriter) atRule(depth int, a *AtRule) {
	tw.Line(depth, "AtRule#%d selector=%q kind=%s", a.ID, a.Selector, a.Kind)
	switch a.Kind {
	case AtRuleKindRules:
		for i := range a.Rules {
			tw.rule(depth+1, &a.Rules[i])
		}
	default:
		for _, d := range a.Declarations {
			tw.declaration(depth+1, d)
		}
	}
}

func (tw treeWriter) declaration(depth int, d Declaration) {
	if d.Important {
		tw.Line(depth, "%s: %s !important", d.Property, d.Value)
		return
	}
	tw.Line(depth, "%s: %s", d.Property, d.Value)
}
