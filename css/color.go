package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColorIR is the intermediate color record every parser produces and every
// formatter consumes. Alpha of -1 means "no alpha channel present" and must
// format without one. LinearR/G/B are populated only by parsers whose
// source space retains more precision than 8-bit sRGB (oklab, oklch);
// formatters targeting those spaces prefer the sidecar when HasLinear.
type ColorIR struct {
	R, G, B   int
	Alpha     float64
	LinearR   float64
	LinearG   float64
	LinearB   float64
	HasLinear bool
}

const noAlpha = -1.0

// ParseColor dispatches to the parser matching the color's textual prefix.
func ParseColor(s string) (ColorIR, error) {
	t := strings.TrimSpace(s)
	lower := strings.ToLower(t)
	switch {
	case strings.HasPrefix(t, "#"):
		return parseHex(t)
	case strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb("):
		return parseRGB(t)
	case strings.HasPrefix(lower, "hsla(") || strings.HasPrefix(lower, "hsl("):
		return parseHSL(t)
	case strings.HasPrefix(lower, "hwba(") || strings.HasPrefix(lower, "hwb("):
		return parseHWB(t)
	case strings.HasPrefix(lower, "oklab("):
		return parseOklab(t)
	case strings.HasPrefix(lower, "oklch("):
		return parseOklch(t)
	default:
		if hex, ok := namedColorHex[lower]; ok {
			return parseHex(hex)
		}
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "unrecognized color syntax"}
	}
}

func parseHex(s string) (ColorIR, error) {
	h := strings.TrimPrefix(s, "#")
	for _, r := range h {
		if !isHexDigit(r) {
			return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-hex character in hex color"}
		}
	}
	expand := func(c byte) int {
		v, _ := strconv.ParseInt(string([]byte{c, c}), 16, 32)
		return int(v)
	}
	pair := func(a, b byte) int {
		v, _ := strconv.ParseInt(string([]byte{a, b}), 16, 32)
		return int(v)
	}
	switch len(h) {
	case 3:
		return ColorIR{R: expand(h[0]), G: expand(h[1]), B: expand(h[2]), Alpha: noAlpha}, nil
	case 6:
		return ColorIR{R: pair(h[0], h[1]), G: pair(h[2], h[3]), B: pair(h[4], h[5]), Alpha: noAlpha}, nil
	case 8:
		a := pair(h[6], h[7])
		return ColorIR{R: pair(h[0], h[1]), G: pair(h[2], h[3]), B: pair(h[4], h[5]), Alpha: float64(a) / 255}, nil
	default:
		return ColorIR{}, &ColorConversionError{Input: s, Reason: fmt.Sprintf("hex color has %d digits, want 3, 6, or 8", len(h))}
	}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func functionArgs(s string) (string, []string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", nil, &ColorConversionError{Input: s, Reason: "missing closing parenthesis"}
	}
	name := strings.ToLower(strings.TrimSpace(s[:open]))
	inner := s[open+1 : len(s)-1]
	// Modern syntax uses space separation with an optional "/ alpha" suffix;
	// legacy syntax is comma separated. Normalize both into a token list.
	inner = strings.ReplaceAll(inner, ",", " ")
	inner = strings.ReplaceAll(inner, "/", " / ")
	fields := strings.Fields(inner)
	return name, fields, nil
}

func parsePercentOrNumber(tok string, full float64) (float64, error) {
	if strings.HasSuffix(tok, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
		if err != nil {
			return 0, err
		}
		return v / 100 * full, nil
	}
	return strconv.ParseFloat(tok, 64)
}

func parseAlphaToken(tok string) (float64, error) {
	if strings.HasSuffix(tok, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
		if err != nil {
			return 0, err
		}
		return v / 100, nil
	}
	return strconv.ParseFloat(tok, 64)
}

func parseRGB(s string) (ColorIR, error) {
	_, fields, err := functionArgs(s)
	if err != nil {
		return ColorIR{}, err
	}
	fields = removeSlash(fields)
	if len(fields) != 3 && len(fields) != 4 {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "rgb() requires 3 or 4 components"}
	}
	comp := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := parsePercentOrNumber(fields[i], 255)
		if err != nil {
			return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric rgb component"}
		}
		if v < 0 || v > 255 {
			return ColorIR{}, &ColorConversionError{Input: s, Reason: "rgb component out of range"}
		}
		comp[i] = v
	}
	ir := ColorIR{R: int(math.Round(comp[0])), G: int(math.Round(comp[1])), B: int(math.Round(comp[2])), Alpha: noAlpha}
	if len(fields) == 4 {
		a, err := parseAlphaToken(fields[3])
		if err != nil || a < 0 || a > 1 {
			return ColorIR{}, &ColorConversionError{Input: s, Reason: "alpha out of range"}
		}
		ir.Alpha = a
	}
	return ir, nil
}

func removeSlash(fields []string) []string {
	out := fields[:0:0]
	for _, f := range fields {
		if f != "/" {
			out = append(out, f)
		}
	}
	return out
}

func parseHSL(s string) (ColorIR, error) {
	_, fields, err := functionArgs(s)
	if err != nil {
		return ColorIR{}, err
	}
	fields = removeSlash(fields)
	if len(fields) != 3 && len(fields) != 4 {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "hsl() requires 3 or 4 components"}
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "deg"), 64)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric hue"}
	}
	h = math.Mod(math.Mod(h, 360)+360, 360)
	satPct, err := parsePercentOrNumber(fields[1], 1)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric saturation"}
	}
	lightPct, err := parsePercentOrNumber(fields[2], 1)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric lightness"}
	}
	r, g, b := hslToRGB(h, satPct, lightPct)
	ir := ColorIR{R: r, G: g, B: b, Alpha: noAlpha}
	if len(fields) == 4 {
		a, err := parseAlphaToken(fields[3])
		if err != nil || a < 0 || a > 1 {
			return ColorIR{}, &ColorConversionError{Input: s, Reason: "alpha out of range"}
		}
		ir.Alpha = a
	}
	return ir, nil
}

// hslToRGB implements the standard CSS-spec HSL to sRGB conversion.
func hslToRGB(h, s, l float64) (int, int, int) {
	if s == 0 {
		v := int(math.Round(l * 255))
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360
	r := hueToRGB(p, q, hk+1.0/3)
	g := hueToRGB(p, q, hk)
	b := hueToRGB(p, q, hk-1.0/3)
	return toByte(r), toByte(g), toByte(b)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func toByte(v float64) int {
	return int(math.Round(clamp(v, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseHWB(s string) (ColorIR, error) {
	_, fields, err := functionArgs(s)
	if err != nil {
		return ColorIR{}, err
	}
	fields = removeSlash(fields)
	if len(fields) != 3 && len(fields) != 4 {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "hwb() requires 3 or 4 components"}
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "deg"), 64)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric hue"}
	}
	h = math.Mod(math.Mod(h, 360)+360, 360)
	w, err := parsePercentOrNumber(fields[1], 1)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric whiteness"}
	}
	bl, err := parsePercentOrNumber(fields[2], 1)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric blackness"}
	}
	if w+bl > 1 {
		total := w + bl
		w /= total
		bl /= total
	}
	r, g, b := hslToRGB(h, 1, 0.5)
	fr, fg, fb := float64(r)/255, float64(g)/255, float64(b)/255
	fr = fr*(1-w-bl) + w
	fg = fg*(1-w-bl) + w
	fb = fb*(1-w-bl) + w
	ir := ColorIR{R: toByte(fr), G: toByte(fg), B: toByte(fb), Alpha: noAlpha}
	if len(fields) == 4 {
		a, err := parseAlphaToken(fields[3])
		if err != nil || a < 0 || a > 1 {
			return ColorIR{}, &ColorConversionError{Input: s, Reason: "alpha out of range"}
		}
		ir.Alpha = a
	}
	return ir, nil
}

// Ottosson's Oklab <-> linear sRGB matrices.
var oklabToLMS = [3][3]float64{
	{1, 0.3963377774, 0.2158037573},
	{1, -0.1055613458, -0.0638541728},
	{1, -0.0894841775, -1.2914855480},
}

var lmsToLinearSRGB = [3][3]float64{
	{4.0767416621, -3.3077115913, 0.2309699292},
	{-1.2684380046, 2.6097574011, -0.3413193965},
	{-0.0041960863, -0.7034186147, 1.7076147010},
}

func oklabToSRGB(l, a, b float64) (r, g, bl float64, lr, lg, lb float64) {
	lms := [3]float64{}
	for i := 0; i < 3; i++ {
		lms[i] = oklabToLMS[i][0]*l + oklabToLMS[i][1]*a + oklabToLMS[i][2]*b
		lms[i] = lms[i] * lms[i] * lms[i]
	}
	var lin [3]float64
	for i := 0; i < 3; i++ {
		lin[i] = lmsToLinearSRGB[i][0]*lms[0] + lmsToLinearSRGB[i][1]*lms[1] + lmsToLinearSRGB[i][2]*lms[2]
	}
	lr, lg, lb = lin[0], lin[1], lin[2]
	r = gammaEncode(lin[0])
	g = gammaEncode(lin[1])
	bl = gammaEncode(lin[2])
	return
}

func gammaEncode(c float64) float64 {
	c = clamp(c, 0, 1)
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func parseOklab(s string) (ColorIR, error) {
	_, fields, err := functionArgs(s)
	if err != nil {
		return ColorIR{}, err
	}
	fields = removeSlash(fields)
	if len(fields) != 3 && len(fields) != 4 {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "oklab() requires 3 or 4 components"}
	}
	l, err := parsePercentOrNumber(fields[0], 1)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric L"}
	}
	a, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric a"}
	}
	b, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric b"}
	}
	r, g, bl, lr, lg, lb := oklabToSRGB(l, a, b)
	ir := ColorIR{R: toByte(r), G: toByte(g), B: toByte(bl), Alpha: noAlpha, LinearR: lr, LinearG: lg, LinearB: lb, HasLinear: true}
	if len(fields) == 4 {
		al, err := parseAlphaToken(fields[3])
		if err != nil || al < 0 || al > 1 {
			return ColorIR{}, &ColorConversionError{Input: s, Reason: "alpha out of range"}
		}
		ir.Alpha = al
	}
	return ir, nil
}

func parseOklch(s string) (ColorIR, error) {
	_, fields, err := functionArgs(s)
	if err != nil {
		return ColorIR{}, err
	}
	fields = removeSlash(fields)
	if len(fields) != 3 && len(fields) != 4 {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "oklch() requires 3 or 4 components"}
	}
	l, err := parsePercentOrNumber(fields[0], 1)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric L"}
	}
	c, err := parsePercentOrNumber(fields[1], 0.4)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric C"}
	}
	if c < 0 {
		c = 0
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(fields[2], "deg"), 64)
	if err != nil {
		return ColorIR{}, &ColorConversionError{Input: s, Reason: "non-numeric H"}
	}
	if c <= 4e-6 {
		h = 0
	}
	rad := h * math.Pi / 180
	a := c * math.Cos(rad)
	b := c * math.Sin(rad)
	r, g, bl, lr, lg, lb := oklabToSRGB(l, a, b)
	ir := ColorIR{R: toByte(r), G: toByte(g), B: toByte(bl), Alpha: noAlpha, LinearR: lr, LinearG: lg, LinearB: lb, HasLinear: true}
	if len(fields) == 4 {
		al, err := parseAlphaToken(fields[3])
		if err != nil || al < 0 || al > 1 {
			return ColorIR{}, &ColorConversionError{Input: s, Reason: "alpha out of range"}
		}
		ir.Alpha = al
	}
	return ir, nil
}

// FormatColor renders ir in the requested format/variant.
func FormatColor(ir ColorIR, format ColorFormat, variant ColorVariant) (string, error) {
	switch format {
	case ColorFormatHex:
		return formatHex(ir), nil
	case ColorFormatRGB, ColorFormatRGBA:
		return formatRGB(ir, variant), nil
	case ColorFormatHSL, ColorFormatHSLA:
		return formatHSL(ir, variant), nil
	case ColorFormatHWB, ColorFormatHWBA:
		return formatHWB(ir, variant), nil
	case ColorFormatOklab:
		return formatOklab(ir), nil
	case ColorFormatOklch:
		return formatOklch(ir), nil
	default:
		return "", &ArgumentError{Reason: fmt.Sprintf("unsupported target color format %q", format)}
	}
}

func formatHex(ir ColorIR) string {
	if ir.Alpha < 0 {
		return fmt.Sprintf("#%02x%02x%02x", ir.R, ir.G, ir.B)
	}
	a := int(math.Round(ir.Alpha * 255))
	return fmt.Sprintf("#%02x%02x%02x%02x", ir.R, ir.G, ir.B, a)
}

func formatRGB(ir ColorIR, variant ColorVariant) string {
	if ir.Alpha < 0 {
		if variant == ColorVariantLegacy {
			return fmt.Sprintf("rgb(%d, %d, %d)", ir.R, ir.G, ir.B)
		}
		return fmt.Sprintf("rgb(%d %d %d)", ir.R, ir.G, ir.B)
	}
	if variant == ColorVariantLegacy {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", ir.R, ir.G, ir.B, formatAlpha(ir.Alpha))
	}
	return fmt.Sprintf("rgb(%d %d %d / %s)", ir.R, ir.G, ir.B, formatAlpha(ir.Alpha))
}

func formatAlpha(a float64) string {
	s := strconv.FormatFloat(a, 'f', -1, 64)
	return s
}

func rgbToHSL(ir ColorIR) (h, s, l float64) {
	r, g, b := float64(ir.R)/255, float64(ir.G)/255, float64(ir.B)/255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l
}

func formatHSL(ir ColorIR, variant ColorVariant) string {
	h, s, l := rgbToHSL(ir)
	hs := strconv.FormatFloat(h, 'f', -1, 64)
	ss := strconv.FormatFloat(s*100, 'f', -1, 64) + "%"
	ls := strconv.FormatFloat(l*100, 'f', -1, 64) + "%"
	if ir.Alpha < 0 {
		if variant == ColorVariantLegacy {
			return fmt.Sprintf("hsl(%s, %s, %s)", hs, ss, ls)
		}
		return fmt.Sprintf("hsl(%s %s %s)", hs, ss, ls)
	}
	if variant == ColorVariantLegacy {
		return fmt.Sprintf("hsla(%s, %s, %s, %s)", hs, ss, ls, formatAlpha(ir.Alpha))
	}
	return fmt.Sprintf("hsl(%s %s %s / %s)", hs, ss, ls, formatAlpha(ir.Alpha))
}

func rgbToHWB(ir ColorIR) (h, w, bl float64) {
	h, _, _ = rgbToHSL(ir)
	r, g, b := float64(ir.R)/255, float64(ir.G)/255, float64(ir.B)/255
	w = math.Min(r, math.Min(g, b))
	bl = 1 - math.Max(r, math.Max(g, b))
	return
}

func formatHWB(ir ColorIR, variant ColorVariant) string {
	h, w, bl := rgbToHWB(ir)
	hs := strconv.FormatFloat(h, 'f', -1, 64)
	ws := strconv.FormatFloat(w*100, 'f', -1, 64) + "%"
	bs := strconv.FormatFloat(bl*100, 'f', -1, 64) + "%"
	if ir.Alpha < 0 {
		if variant == ColorVariantLegacy {
			return fmt.Sprintf("hwb(%s, %s, %s)", hs, ws, bs)
		}
		return fmt.Sprintf("hwb(%s %s %s)", hs, ws, bs)
	}
	if variant == ColorVariantLegacy {
		return fmt.Sprintf("hwba(%s, %s, %s, %s)", hs, ws, bs, formatAlpha(ir.Alpha))
	}
	return fmt.Sprintf("hwb(%s %s %s / %s)", hs, ws, bs, formatAlpha(ir.Alpha))
}

// linearSRGBToLMS and lmsToOklab take linear sRGB back to Oklab
// (linearSRGBToOklab). oklabComponents feeds them the linear sidecar when
// present, else the gamma-decoded 8-bit sRGB channels.
var linearSRGBToLMS = [3][3]float64{
	{0.4122214708, 0.5363325363, 0.0514459929},
	{0.2119034982, 0.6806995451, 0.1073969566},
	{0.0883024619, 0.2817188376, 0.6299787005},
}

var lmsToOklab = [3][3]float64{
	{0.2104542553, 0.7936177850, -0.0040720468},
	{1.9779984951, -2.4285922050, 0.4505937099},
	{0.0259040371, 0.7827717662, -0.8086757660},
}

func linearSRGBToOklab(lr, lg, lb float64) (l, a, b float64) {
	lms := [3]float64{}
	for i := 0; i < 3; i++ {
		lms[i] = linearSRGBToLMS[i][0]*lr + linearSRGBToLMS[i][1]*lg + linearSRGBToLMS[i][2]*lb
		lms[i] = math.Cbrt(lms[i])
	}
	l = lmsToOklab[0][0]*lms[0] + lmsToOklab[0][1]*lms[1] + lmsToOklab[0][2]*lms[2]
	a = lmsToOklab[1][0]*lms[0] + lmsToOklab[1][1]*lms[1] + lmsToOklab[1][2]*lms[2]
	b = lmsToOklab[2][0]*lms[0] + lmsToOklab[2][1]*lms[1] + lmsToOklab[2][2]*lms[2]
	return
}

func gammaDecode(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func oklabComponents(ir ColorIR) (l, a, b float64) {
	if ir.HasLinear {
		return linearSRGBToOklab(ir.LinearR, ir.LinearG, ir.LinearB)
	}
	lr := gammaDecode(float64(ir.R) / 255)
	lg := gammaDecode(float64(ir.G) / 255)
	lb := gammaDecode(float64(ir.B) / 255)
	return linearSRGBToOklab(lr, lg, lb)
}

func formatOklab(ir ColorIR) string {
	l, a, b := oklabComponents(ir)
	ls := strconv.FormatFloat(l, 'f', 4, 64)
	as := strconv.FormatFloat(a, 'f', 4, 64)
	bs := strconv.FormatFloat(b, 'f', 4, 64)
	if ir.Alpha < 0 {
		return fmt.Sprintf("oklab(%s %s %s)", ls, as, bs)
	}
	return fmt.Sprintf("oklab(%s %s %s / %s)", ls, as, bs, formatAlpha(ir.Alpha))
}

func formatOklch(ir ColorIR) string {
	l, a, b := oklabComponents(ir)
	c := math.Sqrt(a*a + b*b)
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	if c <= 4e-6 {
		h = 0
	}
	ls := strconv.FormatFloat(l, 'f', 4, 64)
	cs := strconv.FormatFloat(c, 'f', 4, 64)
	hs := strconv.FormatFloat(h, 'f', 4, 64)
	if ir.Alpha < 0 {
		return fmt.Sprintf("oklch(%s %s %s)", ls, cs, hs)
	}
	return fmt.Sprintf("oklch(%s %s %s / %s)", ls, cs, hs, formatAlpha(ir.Alpha))
}
