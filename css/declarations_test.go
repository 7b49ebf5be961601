package css_test

import (
	"strings"
	"testing"

	"github.com/jamescook/cssproc/css"
)

func TestParseDeclarations_Basic(t *testing.T) {
	decls := css.ParseDeclarations("color: red; font-size: 12px;", css.DefaultLimits())
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d: %+v", len(decls), decls)
	}
	if decls[0].Property != "color" || decls[0].Value != "red" {
		t.Errorf("unexpected first declaration: %+v", decls[0])
	}
}

func TestParseDeclarations_ImportantAndURL(t *testing.T) {
	decls := css.ParseDeclarations(`background: url(data:image/png;base64,AAA==) !important;`, css.DefaultLimits())
	if len(decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d: %+v", len(decls), decls)
	}
	d := decls[0]
	if !d.Important {
		t.Error("expected important flag")
	}
	if !strings.Contains(d.Value, "base64,AAA==") {
		t.Errorf("expected semicolon inside url() to be preserved, got %q", d.Value)
	}
}

func TestParseDeclarations_DropsMalformed(t *testing.T) {
	decls := css.ParseDeclarations("color:; valid: yes; novalue", css.DefaultLimits())
	if len(decls) != 1 || decls[0].Property != "valid" {
		t.Fatalf("expected only the valid declaration to survive, got %+v", decls)
	}
}

func TestParseDeclarations_PropertyLowercased(t *testing.T) {
	decls := css.ParseDeclarations("COLOR: red", css.DefaultLimits())
	if len(decls) != 1 || decls[0].Property != "color" {
		t.Fatalf("expected lowercased property, got %+v", decls)
	}
}

func TestParseDeclarations_OversizedValueDropped(t *testing.T) {
	limits := css.DefaultLimits()
	limits.MaxPropertyValueLength = 4
	decls := css.ParseDeclarations("color: red", limits)
	if len(decls) != 0 {
		t.Errorf("expected oversized value to be dropped, got %+v", decls)
	}
}
