package css_test

import (
	"testing"

	"github.com/jamescook/cssproc/css"
)

func ruleFor(t *testing.T, selector, body string) *css.Rule {
	t.Helper()
	sheet := mustParse(t, selector+" { "+body+" }")
	return sheet.Rules()[0]
}

func declByProp(decls []css.Declaration, prop string) (css.Declaration, bool) {
	for _, d := range decls {
		if d.Property == prop {
			return d, true
		}
	}
	return css.Declaration{}, false
}

func TestCascade_ImportantBeatsSpecificity(t *testing.T) {
	r1 := ruleFor(t, "p", "color: red !important")
	r2 := ruleFor(t, "div p", "color: blue")
	result := css.Cascade([]*css.Rule{r1, r2})
	d, ok := declByProp(result, "color")
	if !ok || d.Value != "red" || !d.Important {
		t.Fatalf("expected color:red !important, got %+v ok=%v", d, ok)
	}
}

func TestCascade_HigherSpecificityWins(t *testing.T) {
	r1 := ruleFor(t, "p", "color: red")
	r2 := ruleFor(t, "div p", "color: blue")
	result := css.Cascade([]*css.Rule{r1, r2})
	d, ok := declByProp(result, "color")
	if !ok || d.Value != "blue" {
		t.Fatalf("expected color:blue (higher specificity), got %+v ok=%v", d, ok)
	}
}

func TestCascade_LowerSpecificityDoesNotReplace(t *testing.T) {
	r1 := ruleFor(t, "div p", "color: blue")
	r2 := ruleFor(t, "p", "color: red")
	result := css.Cascade([]*css.Rule{r1, r2})
	d, ok := declByProp(result, "color")
	if !ok || d.Value != "blue" {
		t.Fatalf("expected color:blue to survive lower-specificity later rule, got %+v ok=%v", d, ok)
	}
}

func TestCascade_ExpandsAndReconstructsShorthand(t *testing.T) {
	r := ruleFor(t, "p", "margin: 10px 20px")
	result := css.Cascade([]*css.Rule{r})
	d, ok := declByProp(result, "margin")
	if !ok || d.Value != "10px 20px" {
		t.Fatalf("expected margin expanded then reconstructed to 10px 20px, got %+v ok=%v", d, ok)
	}
}

func TestCascade_ReconstructsShorthandWhenComplete(t *testing.T) {
	r := ruleFor(t, "p", "margin-top: 5px; margin-right: 5px; margin-bottom: 5px; margin-left: 5px")
	result := css.Cascade([]*css.Rule{r})
	d, ok := declByProp(result, "margin")
	if !ok || d.Value != "5px" {
		t.Fatalf("expected reconstructed margin:5px, got %+v ok=%v", d, ok)
	}
	if _, ok := declByProp(result, "margin-top"); ok {
		t.Error("expected margin-top to be removed after reconstruction")
	}
}
