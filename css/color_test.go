package css_test

import (
	"testing"

	"github.com/jamescook/cssproc/css"
)

func TestParseColor_Hex(t *testing.T) {
	cases := []struct {
		in             string
		r, g, b        int
		wantAlphaAbsent bool
	}{
		{"#fff", 255, 255, 255, true},
		{"#ff0000", 255, 0, 0, true},
		{"#00000080", 0, 0, 0, false},
	}
	for _, tc := range cases {
		ir, err := css.ParseColor(tc.in)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", tc.in, err)
		}
		if ir.R != tc.r || ir.G != tc.g || ir.B != tc.b {
			t.Errorf("ParseColor(%q) = %+v, want rgb(%d,%d,%d)", tc.in, ir, tc.r, tc.g, tc.b)
		}
		if (ir.Alpha < 0) != tc.wantAlphaAbsent {
			t.Errorf("ParseColor(%q) alpha = %v, wantAbsent=%v", tc.in, ir.Alpha, tc.wantAlphaAbsent)
		}
	}
}

func TestParseColor_InvalidHex(t *testing.T) {
	if _, err := css.ParseColor("#zzzzzz"); err == nil {
		t.Error("expected error for non-hex characters")
	}
}

func TestParseColor_RGBOutOfRange(t *testing.T) {
	if _, err := css.ParseColor("rgb(256, 0, 0)"); err == nil {
		t.Error("expected error for out-of-range rgb component")
	}
	if _, err := css.ParseColor("rgba(0, 0, 0, 1.5)"); err == nil {
		t.Error("expected error for out-of-range alpha")
	}
}

func TestConvertColor_HexToRGB(t *testing.T) {
	ir, err := css.ParseColor("#ff0000")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	modern, err := css.FormatColor(ir, css.ColorFormatRGB, css.ColorVariantModern)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}
	if modern != "rgb(255 0 0)" {
		t.Errorf("modern rgb = %q, want %q", modern, "rgb(255 0 0)")
	}
	legacy, err := css.FormatColor(ir, css.ColorFormatRGB, css.ColorVariantLegacy)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}
	if legacy != "rgb(255, 0, 0)" {
		t.Errorf("legacy rgb = %q, want %q", legacy, "rgb(255, 0, 0)")
	}
}

func TestColorFormatter_Idempotent(t *testing.T) {
	ir, err := css.ParseColor("hsl(210, 50%, 40%)")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	formatted, err := css.FormatColor(ir, css.ColorFormatHex, css.ColorVariantModern)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}
	ir2, err := css.ParseColor(formatted)
	if err != nil {
		t.Fatalf("reparse error: %v", err)
	}
	formatted2, err := css.FormatColor(ir2, css.ColorFormatHex, css.ColorVariantModern)
	if err != nil {
		t.Fatalf("reformat error: %v", err)
	}
	if formatted != formatted2 {
		t.Errorf("formatter not idempotent: %q != %q", formatted, formatted2)
	}
}

func TestOklabRoundTrip_PreservesSRGBWithinRounding(t *testing.T) {
	ir, err := css.ParseColor("#336699")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	oklab, err := css.FormatColor(ir, css.ColorFormatOklab, css.ColorVariantModern)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}
	back, err := css.ParseColor(oklab)
	if err != nil {
		t.Fatalf("reparse error: %v", err)
	}
	if abs(back.R-ir.R) > 1 || abs(back.G-ir.G) > 1 || abs(back.B-ir.B) > 1 {
		t.Errorf("oklab round trip drifted: got %+v, want close to %+v", back, ir)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestParseColor_NamedColor(t *testing.T) {
	ir, err := css.ParseColor("cornflowerblue")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if ir.R != 0x64 || ir.G != 0x95 || ir.B != 0xed {
		t.Errorf("unexpected rgb for cornflowerblue: %+v", ir)
	}
}
