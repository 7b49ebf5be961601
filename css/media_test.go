package css_test

import (
	"testing"

	"github.com/jamescook/cssproc/css"
)

func TestParseMediaTypes(t *testing.T) {
	got := css.ParseMediaTypes("screen and (min-width: 768px)")
	if len(got) != 1 || got[0] != "screen" {
		t.Errorf("ParseMediaTypes = %v, want [screen]", got)
	}
}

func TestParseMediaTypes_MultipleTypes(t *testing.T) {
	got := css.ParseMediaTypes("screen, print")
	want := []string{"screen", "print"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractImports_URLForm(t *testing.T) {
	src := `@charset "UTF-8";
@import url("foo.css") screen;
@import "bar.css";
.a { color: red }`
	imports := css.ExtractImports(src)
	if len(imports) != 2 {
		t.Fatalf("expected 2 imports, got %d: %+v", len(imports), imports)
	}
	if imports[0].URL != "foo.css" || imports[0].MediaQuery != "screen" {
		t.Errorf("unexpected first import: %+v", imports[0])
	}
	if imports[1].URL != "bar.css" {
		t.Errorf("unexpected second import: %+v", imports[1])
	}
}

func TestExtractImports_StopsAtNonImportContent(t *testing.T) {
	src := `.a { color: red }
@import "late.css";`
	imports := css.ExtractImports(src)
	if len(imports) != 0 {
		t.Errorf("expected no imports once non-import content is reached, got %+v", imports)
	}
}
