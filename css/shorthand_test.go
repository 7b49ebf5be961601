package css_test

import (
	"testing"

	"github.com/jamescook/cssproc/css"
)

func TestExpandShorthand_MarginThreeValue(t *testing.T) {
	decls := css.ExpandShorthand("margin", "10px 20px 30px", false)
	want := map[string]string{
		"margin-top":    "10px",
		"margin-right":  "20px",
		"margin-bottom": "30px",
		"margin-left":   "20px",
	}
	if len(decls) != 4 {
		t.Fatalf("expected 4 declarations, got %d: %+v", len(decls), decls)
	}
	for _, d := range decls {
		if want[d.Property] != d.Value {
			t.Errorf("%s = %q, want %q", d.Property, d.Value, want[d.Property])
		}
	}
}

func TestExpandShorthand_Unrecognized(t *testing.T) {
	decls := css.ExpandShorthand("color", "red", false)
	if len(decls) != 0 {
		t.Errorf("expected no expansion for non-shorthand property, got %+v", decls)
	}
}

func TestExpandShorthand_Font(t *testing.T) {
	decls := css.ExpandShorthand("font", "italic bold 12px/1.5 Arial, sans-serif", false)
	got := map[string]string{}
	for _, d := range decls {
		got[d.Property] = d.Value
	}
	if got["font-style"] != "italic" {
		t.Errorf("font-style = %q", got["font-style"])
	}
	if got["font-weight"] != "bold" {
		t.Errorf("font-weight = %q", got["font-weight"])
	}
	if got["font-size"] != "12px" {
		t.Errorf("font-size = %q", got["font-size"])
	}
	if got["line-height"] != "1.5" {
		t.Errorf("line-height = %q", got["line-height"])
	}
	if got["font-family"] != "Arial, sans-serif" {
		t.Errorf("font-family = %q", got["font-family"])
	}
}

func TestContractFourSided_RoundTrip(t *testing.T) {
	decls := css.ExpandShorthand("margin", "10px 10px 10px 10px", false)
	sides := map[string]css.Declaration{}
	for _, d := range decls {
		side := d.Property[len("margin-"):]
		sides[side] = d
	}
	value, important, ok := css.ContractFourSided(sides)
	if !ok {
		t.Fatal("expected contraction to succeed")
	}
	if important {
		t.Error("expected non-important result")
	}
	if value != "10px" {
		t.Errorf("contracted value = %q, want %q", value, "10px")
	}
}

func TestContractFourSided_DeclinesOnMixedImportant(t *testing.T) {
	sides := map[string]css.Declaration{
		"top":    {Property: "margin-top", Value: "1px", Important: true},
		"right":  {Property: "margin-right", Value: "1px", Important: false},
		"bottom": {Property: "margin-bottom", Value: "1px", Important: true},
		"left":   {Property: "margin-left", Value: "1px", Important: true},
	}
	_, _, ok := css.ContractFourSided(sides)
	if ok {
		t.Error("expected contraction to decline when important flags differ")
	}
}

func TestExpandBackground_Defaults(t *testing.T) {
	decls := css.ExpandShorthand("background", "url(bg.png)", false)
	got := map[string]string{}
	for _, d := range decls {
		got[d.Property] = d.Value
	}
	if got["background-color"] != "transparent" {
		t.Errorf("background-color = %q", got["background-color"])
	}
	if got["background-repeat"] != "repeat" {
		t.Errorf("background-repeat = %q", got["background-repeat"])
	}
	if got["background-image"] != "url(bg.png)" {
		t.Errorf("background-image = %q", got["background-image"])
	}
}
