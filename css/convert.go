package css

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var colorShorthandProperties = map[string]bool{"background": true}

// RewriteColorsInValue walks value, leaving url(...) content untouched,
// finds each color run by its textual prefix, and replaces it with the
// same color rendered in the target format/variant. Runs that fail to
// parse as a color (the prefix matched but the body didn't) are left
// untouched, per spec: the rewriter only ever substitutes runs it can
// parse successfully.
func RewriteColorsInValue(value string, from ColorFormat, to ColorFormat, variant ColorVariant) string {
	out, _ := rewriteColorsInValue(value, from, to, variant)
	return out
}

// rewriteColorsInValue is RewriteColorsInValue's core, additionally
// reporting the runs it left untouched because they matched from's prefix
// but failed to parse or re-format as a color. Those are recoverable (the
// original text survives unchanged) but worth surfacing to the caller the
// way the rest of the package surfaces dropped/skipped input.
func rewriteColorsInValue(value string, from ColorFormat, to ColorFormat, variant ColorVariant) (string, []error) {
	var out strings.Builder
	var errs []error
	i, n := 0, len(value)
	for i < n {
		if strings.HasPrefix(value[i:], "url(") {
			end := strings.IndexByte(value[i:], ')')
			if end < 0 {
				out.WriteString(value[i:])
				break
			}
			out.WriteString(value[i : i+end+1])
			i += end + 1
			continue
		}
		if span, ok := matchColorRun(value, i); ok {
			text := value[i : i+span]
			if matchesSourceFormat(text, from) {
				ir, err := ParseColor(text)
				if err == nil {
					formatted, ferr := FormatColor(ir, to, variant)
					if ferr == nil {
						out.WriteString(formatted)
						i += span
						continue
					}
					err = ferr
				}
				errs = append(errs, fmt.Errorf("leaving %q unconverted: %w", text, err))
			}
			out.WriteString(text)
			i += span
			continue
		}
		out.WriteByte(value[i])
		i++
	}
	return out.String(), errs
}

func matchesSourceFormat(text string, from ColorFormat) bool {
	if from == ColorFormatAny {
		return true
	}
	lower := strings.ToLower(text)
	switch from {
	case ColorFormatHex:
		return strings.HasPrefix(text, "#")
	case ColorFormatRGB, ColorFormatRGBA:
		return strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(")
	case ColorFormatHSL, ColorFormatHSLA:
		return strings.HasPrefix(lower, "hsl(") || strings.HasPrefix(lower, "hsla(")
	case ColorFormatHWB, ColorFormatHWBA:
		return strings.HasPrefix(lower, "hwb(") || strings.HasPrefix(lower, "hwba(")
	case ColorFormatOklab:
		return strings.HasPrefix(lower, "oklab(")
	case ColorFormatOklch:
		return strings.HasPrefix(lower, "oklch(")
	default:
		return false
	}
}

// matchColorRun returns the byte length of a color-looking run starting at
// i (hex, or one of the color function names up to the first closing
// paren after it; nested parentheses are not tracked),
// or ok=false if no such run starts there.
func matchColorRun(value string, i int) (int, bool) {
	rest := value[i:]
	lower := strings.ToLower(rest)
	if strings.HasPrefix(rest, "#") {
		j := 1
		for j < len(rest) && isHexDigit(rune(rest[j])) {
			j++
		}
		if j > 1 {
			return j, true
		}
		return 0, false
	}
	for _, fn := range []string{"rgba(", "rgb(", "hsla(", "hsl(", "hwba(", "hwb(", "oklch(", "oklab("} {
		if strings.HasPrefix(lower, fn) {
			close := strings.IndexByte(rest, ')')
			if close < 0 {
				return 0, false
			}
			return close + 1, true
		}
	}
	return 0, false
}

// ConvertDeclarationColors rewrites the value of one declaration,
// expanding it first if its property is a color-bearing shorthand. It
// returns the rewritten declarations plus any per-run conversion issues
// (text that matched from's prefix but couldn't be parsed or re-formatted,
// and so was left untouched).
func ConvertDeclarationColors(d Declaration, from, to ColorFormat, variant ColorVariant) ([]Declaration, []error) {
	if colorShorthandProperties[strings.ToLower(d.Property)] {
		expanded := ExpandShorthand(d.Property, d.Value, d.Important)
		if len(expanded) > 0 {
			var errs []error
			for i := range expanded {
				rewritten, ferrs := rewriteColorsInValue(expanded[i].Value, from, to, variant)
				expanded[i].Value = rewritten
				for _, fe := range ferrs {
					errs = append(errs, fmt.Errorf("%s: %w", expanded[i].Property, fe))
				}
			}
			return expanded, errs
		}
	}
	rewritten, errs := rewriteColorsInValue(d.Value, from, to, variant)
	out := []Declaration{{
		Property:  d.Property,
		Value:     rewritten,
		Important: d.Important,
	}}
	wrapped := make([]error, 0, len(errs))
	for _, e := range errs {
		wrapped = append(wrapped, fmt.Errorf("%s: %w", d.Property, e))
	}
	return out, wrapped
}

// defaultVariantFor mirrors spec.md's default: legacy for the comma-syntax
// target formats, modern otherwise.
func defaultVariantFor(to ColorFormat) ColorVariant {
	switch to {
	case ColorFormatRGBA, ColorFormatHSLA, ColorFormatHWBA:
		return ColorVariantLegacy
	default:
		return ColorVariantModern
	}
}

// ConvertColors rewrites every declaration's value across an entire
// stylesheet, in place, converting colors matching `from` to `to` in the
// given variant. It returns the same stylesheet and the aggregate (via
// multierr) of every per-declaration conversion issue encountered —
// text that looked like a `from`-formatted color but didn't actually
// parse or re-format, left in place rather than dropped. Each issue is
// also logged at Debug as it's found, mirroring the parser's
// log-plus-aggregate pairing for recoverable problems.
func ConvertColors(sheet *Stylesheet, from, to ColorFormat, variant *ColorVariant, log *zap.Logger) (*Stylesheet, error) {
	if sheet == nil {
		return nil, &ArgumentError{Reason: "nil stylesheet"}
	}
	if log == nil {
		log = zap.NewNop()
	}
	v := defaultVariantFor(to)
	if variant != nil {
		v = *variant
	}
	var errs error
	convert := func(d Declaration) []Declaration {
		rewritten, declErrs := ConvertDeclarationColors(d, from, to, v)
		for _, e := range declErrs {
			log.Debug("color conversion left a run unconverted", zap.Error(e))
			errs = multierr.Append(errs, e)
		}
		return rewritten
	}
	for _, r := range sheet.Rules() {
		var rewritten []Declaration
		for _, d := range r.Declarations {
			rewritten = append(rewritten, convert(d)...)
		}
		r.Declarations = rewritten
	}
	for _, a := range sheet.AtRules() {
		if len(a.Declarations) > 0 {
			var rewritten []Declaration
			for _, d := range a.Declarations {
				rewritten = append(rewritten, convert(d)...)
			}
			a.Declarations = rewritten
		}
		for i := range a.Rules {
			var rewritten []Declaration
			for _, d := range a.Rules[i].Declarations {
				rewritten = append(rewritten, convert(d)...)
			}
			a.Rules[i].Declarations = rewritten
		}
	}
	return sheet, errs
}
