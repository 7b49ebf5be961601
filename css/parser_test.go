package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jamescook/cssproc/css"
)

func mustParse(t *testing.T, src string) *css.Stylesheet {
	t.Helper()
	p := css.NewParser(zap.NewNop(), css.DefaultLimits())
	sheet, err := p.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return sheet
}

func TestParser_SimpleRule(t *testing.T) {
	sheet := mustParse(t, "p { color: red; font-size: 12px }")
	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.Selector != "p" {
		t.Errorf("selector = %q, want %q", r.Selector, "p")
	}
	if len(r.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(r.Declarations))
	}
	if r.Declarations[0].Property != "color" || r.Declarations[0].Value != "red" || r.Declarations[0].Important {
		t.Errorf("unexpected first declaration: %+v", r.Declarations[0])
	}
	if r.Declarations[1].Property != "font-size" || r.Declarations[1].Value != "12px" {
		t.Errorf("unexpected second declaration: %+v", r.Declarations[1])
	}
}

func TestParser_MediaBlock(t *testing.T) {
	sheet := mustParse(t, "@media screen { .a { margin: 10px 20px } }")
	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule inside @media, got %d", len(rules))
	}
	r := rules[0]
	if len(r.MediaTypes) != 1 || r.MediaTypes[0] != "screen" {
		t.Errorf("media types = %v, want [screen]", r.MediaTypes)
	}
	d, ok := r.GetDeclaration("margin")
	if !ok {
		t.Fatal("expected margin declaration")
	}
	if d.Value != "10px 20px" || d.Important {
		t.Errorf("unexpected margin declaration: %+v", d)
	}
}

func TestParser_Important(t *testing.T) {
	sheet := mustParse(t, "p { color: red !important; }")
	r := sheet.Rules()[0]
	d, ok := r.GetDeclaration("color")
	if !ok || !d.Important || d.Value != "red" {
		t.Fatalf("unexpected declaration: %+v ok=%v", d, ok)
	}
}

func TestParser_FontFace(t *testing.T) {
	sheet := mustParse(t, `@font-face { font-family: "Example"; src: url(example.woff); }`)
	atRules := sheet.AtRules()
	if len(atRules) != 1 {
		t.Fatalf("expected 1 at-rule, got %d", len(atRules))
	}
	ff := atRules[0]
	if ff.Kind != css.AtRuleKindDeclarations {
		t.Fatalf("expected declarations kind, got %v", ff.Kind)
	}
	found := false
	for _, d := range ff.Declarations {
		if d.Property == "font-family" {
			found = true
			if !strings.Contains(d.Value, "Example") {
				t.Errorf("font-family value = %q", d.Value)
			}
		}
	}
	if !found {
		t.Error("expected font-family declaration in @font-face")
	}
}

func TestParser_Keyframes(t *testing.T) {
	sheet := mustParse(t, "@keyframes spin { from { opacity: 0 } to { opacity: 1 } }")
	atRules := sheet.AtRules()
	if len(atRules) != 1 {
		t.Fatalf("expected 1 at-rule, got %d", len(atRules))
	}
	kf := atRules[0]
	if kf.Kind != css.AtRuleKindRules {
		t.Fatalf("expected rules kind, got %v", kf.Kind)
	}
	if len(kf.Rules) != 2 {
		t.Fatalf("expected 2 keyframe rules, got %d", len(kf.Rules))
	}
}

func TestParser_SupportsFlattensRules(t *testing.T) {
	sheet := mustParse(t, "@supports (display: grid) { .a { color: red } }")
	rules := sheet.Rules()
	if len(rules) != 1 || rules[0].Selector != ".a" {
		t.Fatalf("expected @supports content spliced into top level, got %+v", rules)
	}
}

func TestParser_CommaSeparatedSelectors(t *testing.T) {
	sheet := mustParse(t, "h1, h2 { color: blue }")
	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Selector != "h1" || rules[1].Selector != "h2" {
		t.Errorf("unexpected selectors: %q, %q", rules[0].Selector, rules[1].Selector)
	}
}

func TestParser_DepthLimit(t *testing.T) {
	limits := css.DefaultLimits()
	limits.MaxParseDepth = 1
	p := css.NewParser(zap.NewNop(), limits)
	_, err := p.Parse([]byte("@media screen { @supports (color: red) { .a { color: red } } }"))
	if err == nil {
		t.Fatal("expected a depth error for nested at-rules beyond the limit")
	}
	var depthErr *css.DepthError
	if !asDepthError(err, &depthErr) {
		t.Fatalf("expected *css.DepthError, got %T: %v", err, err)
	}
}

func asDepthError(err error, target **css.DepthError) bool {
	if de, ok := err.(*css.DepthError); ok {
		*target = de
		return true
	}
	return false
}

func TestParser_NestedExplicit(t *testing.T) {
	sheet := mustParse(t, ".btn { color: red; &:hover { color: blue; } }")
	if !sheet.HasNesting {
		t.Fatal("expected HasNesting to be true")
	}
	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules (parent + nested), got %d: %+v", len(rules), rules)
	}
	parent, child := rules[0], rules[1]
	if parent.Selector != ".btn" || parent.ParentRuleID != nil {
		t.Fatalf("unexpected parent rule: %+v", parent)
	}
	if child.Selector != ".btn:hover" {
		t.Errorf("expected resolved child selector .btn:hover, got %q", child.Selector)
	}
	if child.ParentRuleID == nil || *child.ParentRuleID != parent.ID {
		t.Errorf("expected child.ParentRuleID = %d, got %v", parent.ID, child.ParentRuleID)
	}
	if child.NestingStyle != css.NestingStyleExplicit {
		t.Errorf("expected explicit nesting style, got %v", child.NestingStyle)
	}
}

func TestParser_NestedImplicit(t *testing.T) {
	sheet := mustParse(t, ".parent { color: red; .child { color: blue; } }")
	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules (parent + nested), got %d: %+v", len(rules), rules)
	}
	parent, child := rules[0], rules[1]
	if child.Selector != ".parent .child" {
		t.Errorf("expected resolved child selector .parent .child, got %q", child.Selector)
	}
	if child.ParentRuleID == nil || *child.ParentRuleID != parent.ID {
		t.Errorf("expected child.ParentRuleID = %d, got %v", parent.ID, child.ParentRuleID)
	}
	if child.NestingStyle != css.NestingStyleImplicit {
		t.Errorf("expected implicit nesting style, got %v", child.NestingStyle)
	}
}

func TestParser_NestedRoundTripsThroughSerializer(t *testing.T) {
	sheet := mustParse(t, ".btn { color: red; &:hover { color: blue; } }")
	out := css.Serialize(sheet, css.SerializeOptions{Compact: true})
	if !strings.Contains(out, "&:hover") {
		t.Errorf("expected serialized output to unresolve nesting back to &:hover, got %q", out)
	}
	reparsed := mustParse(t, out)
	if len(reparsed.Rules()) != 2 {
		t.Fatalf("expected round-trip to preserve 2 rules, got %d", len(reparsed.Rules()))
	}
}
