package css

import (
	"strconv"
	"strings"
)

var boxSides = []string{"top", "right", "bottom", "left"}

// expandFourSided implements the 1/2/3/4-value box model for margin and
// padding; border-color/style/width go through expandBorderComponent.
func expandFourSided(prefix, value string, important bool) []Declaration {
	fields := strings.Fields(value)
	var top, right, bottom, left string
	switch len(fields) {
	case 1:
		top, right, bottom, left = fields[0], fields[0], fields[0], fields[0]
	case 2:
		top, right, bottom, left = fields[0], fields[1], fields[0], fields[1]
	case 3:
		top, right, bottom, left = fields[0], fields[1], fields[2], fields[1]
	case 4:
		top, right, bottom, left = fields[0], fields[1], fields[2], fields[3]
	default:
		return nil
	}
	vals := []string{top, right, bottom, left}
	out := make([]Declaration, 0, 4)
	for i, side := range boxSides {
		out = append(out, Declaration{Property: prefix + "-" + side, Value: vals[i], Important: important})
	}
	return out
}

var borderWidthKeywords = map[string]bool{"thin": true, "medium": true, "thick": true, "inherit": true}
var borderStyleKeywords = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true, "inherit": true,
}

func isNumericToken(tok string) bool {
	if tok == "" {
		return false
	}
	i := 0
	if tok[0] == '-' || tok[0] == '+' {
		i = 1
	}
	sawDigit := false
	for ; i < len(tok); i++ {
		c := tok[i]
		if c >= '0' && c <= '9' {
			sawDigit = true
			continue
		}
		if c == '.' {
			continue
		}
		break
	}
	if !sawDigit {
		return false
	}
	// remainder, if any, must be a unit suffix (e.g. px, em, %).
	rest := strings.ToLower(tok[i:])
	if rest == "" {
		return true
	}
	for _, u := range lengthUnits {
		if rest == u {
			return true
		}
	}
	return false
}

func classifyBorderToken(tok string) (kind string) {
	lower := strings.ToLower(tok)
	if borderStyleKeywords[lower] {
		return "style"
	}
	if borderWidthKeywords[lower] || isNumericToken(tok) {
		return "width"
	}
	return "color"
}

// expandBorderTriple classifies a `width style color` composite, applying
// the result to the given side names (four sides for `border`, one for
// `border-top` etc).
func expandBorderTriple(value string, important bool, sides []string) []Declaration {
	fields := strings.Fields(value)
	var width, style, color string
	for _, f := range fields {
		switch classifyBorderToken(f) {
		case "width":
			width = f
		case "style":
			style = f
		default:
			color = f
		}
	}
	var out []Declaration
	for _, side := range sides {
		if width != "" {
			out = append(out, Declaration{Property: "border-" + side + "-width", Value: width, Important: important})
		}
		if style != "" {
			out = append(out, Declaration{Property: "border-" + side + "-style", Value: style, Important: important})
		}
		if color != "" {
			out = append(out, Declaration{Property: "border-" + side + "-color", Value: color, Important: important})
		}
	}
	return out
}

var fontSizeKeywords = map[string]bool{
	"xx-small": true, "x-small": true, "small": true, "medium": true, "large": true,
	"x-large": true, "xx-large": true, "smaller": true, "larger": true,
}

var lengthUnits = []string{"px", "em", "rem", "pt", "pc", "in", "cm", "mm", "ex", "ch", "vw", "vh", "vmin", "vmax", "%"}

func looksLikeFontSize(tok string) bool {
	lower := strings.ToLower(tok)
	if fontSizeKeywords[lower] {
		return true
	}
	for _, u := range lengthUnits {
		if strings.HasSuffix(lower, u) {
			numPart := strings.TrimSuffix(lower, u)
			if isNumericToken(numPart) {
				return true
			}
		}
	}
	return false
}

var fontWeightKeywords = map[string]bool{"bold": true, "bolder": true, "lighter": true, "normal": true}

func looksLikeFontWeight(tok string) bool {
	lower := strings.ToLower(tok)
	if fontWeightKeywords[lower] {
		return true
	}
	if len(tok) == 3 {
		if _, err := strconv.Atoi(tok); err == nil {
			return true
		}
	}
	return false
}

// expandFont implements the `font` shorthand per spec: split at the first
// `/` into head and line-height+family, find the size token in head by a
// strict unit-suffix test (not the looser substring heuristic the original
// implementation used), classify the tokens before it as style/variant/
// weight, and everything after size as the family.
func expandFont(value string, important bool) []Declaration {
	head := value
	lineHeight := ""
	family := ""
	if idx := strings.Index(value, "/"); idx >= 0 {
		head = strings.TrimSpace(value[:idx])
		rest := strings.TrimSpace(value[idx+1:])
		parts := strings.SplitN(rest, " ", 2)
		lineHeight = parts[0]
		if len(parts) == 2 {
			family = strings.TrimSpace(parts[1])
		}
	}
	fields := strings.Fields(head)
	sizeIdx := -1
	for i, f := range fields {
		if looksLikeFontSize(f) {
			sizeIdx = i
			break
		}
	}
	if sizeIdx < 0 {
		return nil
	}
	style, variant, weight := "normal", "normal", "normal"
	for _, f := range fields[:sizeIdx] {
		lower := strings.ToLower(f)
		switch {
		case lower == "italic" || lower == "oblique":
			style = lower
		case lower == "small-caps":
			variant = lower
		case looksLikeFontWeight(f):
			weight = lower
		}
	}
	size := fields[sizeIdx]
	if family == "" && len(fields) > sizeIdx+1 {
		family = strings.Join(fields[sizeIdx+1:], " ")
	}
	out := []Declaration{
		{Property: "font-style", Value: style, Important: important},
		{Property: "font-variant", Value: variant, Important: important},
		{Property: "font-weight", Value: weight, Important: important},
		{Property: "font-size", Value: size, Important: important},
	}
	if lineHeight != "" {
		out = append(out, Declaration{Property: "line-height", Value: lineHeight, Important: important})
	}
	if family != "" {
		out = append(out, Declaration{Property: "font-family", Value: family, Important: important})
	}
	return out
}

var listStyleTypeKeywords = map[string]bool{
	"disc": true, "circle": true, "square": true, "decimal": true, "decimal-leading-zero": true,
	"lower-roman": true, "upper-roman": true, "lower-alpha": true, "upper-alpha": true, "none": true,
}
var listStylePositionKeywords = map[string]bool{"inside": true, "outside": true}

func expandListStyle(value string, important bool) []Declaration {
	var out []Declaration
	for _, f := range strings.Fields(value) {
		lower := strings.ToLower(f)
		switch {
		case strings.HasPrefix(lower, "url("):
			out = append(out, Declaration{Property: "list-style-image", Value: f, Important: important})
		case listStylePositionKeywords[lower]:
			out = append(out, Declaration{Property: "list-style-position", Value: f, Important: important})
		case listStyleTypeKeywords[lower]:
			out = append(out, Declaration{Property: "list-style-type", Value: f, Important: important})
		}
	}
	return out
}

var backgroundRepeatKeywords = map[string]bool{"repeat": true, "repeat-x": true, "repeat-y": true, "no-repeat": true, "space": true, "round": true}
var backgroundAttachmentKeywords = map[string]bool{"scroll": true, "fixed": true, "local": true}
var backgroundPositionKeywords = map[string]bool{"left": true, "right": true, "top": true, "bottom": true, "center": true}

func looksLikeColor(tok string) bool {
	lower := strings.ToLower(tok)
	if strings.HasPrefix(tok, "#") {
		return true
	}
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla(", "hwb(", "hwba("} {
		if strings.HasPrefix(lower, fn) {
			return true
		}
	}
	if _, ok := namedColorHex[lower]; ok {
		return true
	}
	return lower == "transparent" || lower == "currentcolor"
}

func looksLikeImage(tok string) bool {
	lower := strings.ToLower(tok)
	return strings.HasPrefix(lower, "url(") || strings.HasSuffix(lower, "-gradient(") ||
		strings.Contains(lower, "gradient(") || lower == "none"
}

// expandBackground implements the `background` shorthand per spec,
// splitting size at `/`, classifying tokens, and filling defaults for any
// missing longhand.
func expandBackground(value string, important bool) []Declaration {
	head := value
	size := ""
	if idx := strings.Index(value, "/"); idx >= 0 {
		head = strings.TrimSpace(value[:idx])
		size = strings.TrimSpace(value[idx+1:])
	}
	var images, repeats, attachments, positions, colors []string
	for _, f := range strings.Fields(head) {
		switch {
		case looksLikeImage(f):
			images = append(images, f)
		case backgroundRepeatKeywords[strings.ToLower(f)]:
			repeats = append(repeats, f)
		case backgroundAttachmentKeywords[strings.ToLower(f)]:
			attachments = append(attachments, f)
		case looksLikeColor(f):
			colors = append(colors, f)
		case backgroundPositionKeywords[strings.ToLower(f)] || isNumericToken(strings.TrimSuffix(f, "%")):
			positions = append(positions, f)
		}
	}
	color := "transparent"
	if len(colors) > 0 {
		color = colors[len(colors)-1]
	}
	image := "none"
	if len(images) > 0 {
		image = strings.Join(images, " ")
	}
	repeat := "repeat"
	if len(repeats) > 0 {
		repeat = strings.Join(repeats, " ")
	}
	attachment := "scroll"
	if len(attachments) > 0 {
		attachment = strings.Join(attachments, " ")
	}
	position := "0% 0%"
	if len(positions) > 0 {
		position = strings.Join(positions, " ")
	}
	out := []Declaration{
		{Property: "background-color", Value: color, Important: important},
		{Property: "background-image", Value: image, Important: important},
		{Property: "background-repeat", Value: repeat, Important: important},
		{Property: "background-attachment", Value: attachment, Important: important},
		{Property: "background-position", Value: position, Important: important},
	}
	if size != "" {
		out = append(out, Declaration{Property: "background-size", Value: size, Important: important})
	}
	return out
}

// ExpandShorthand expands one shorthand declaration into longhands. It
// returns an empty slice (not an error) when the property isn't a known
// shorthand or its value can't be classified.
func ExpandShorthand(prop, value string, important bool) []Declaration {
	switch strings.ToLower(prop) {
	case "margin", "padding":
		return expandFourSided(prop, value, important)
	case "border-color", "border-style", "border-width":
		component := strings.TrimPrefix(prop, "border-")
		return expandBorderComponent(component, value, important)
	case "border":
		return expandBorderTriple(value, important, boxSides)
	case "border-top", "border-right", "border-bottom", "border-left":
		side := strings.TrimPrefix(prop, "border-")
		return expandBorderTriple(value, important, []string{side})
	case "font":
		return expandFont(value, important)
	case "list-style":
		return expandListStyle(value, important)
	case "background":
		return expandBackground(value, important)
	default:
		return nil
	}
}

// expandBorderComponent expands border-{color,style,width} into its four
// per-side longhands (border-top-color, border-right-color, ...).
func expandBorderComponent(component, value string, important bool) []Declaration {
	fields := strings.Fields(value)
	var t, r, b, l string
	switch len(fields) {
	case 1:
		t, r, b, l = fields[0], fields[0], fields[0], fields[0]
	case 2:
		t, r, b, l = fields[0], fields[1], fields[0], fields[1]
	case 3:
		t, r, b, l = fields[0], fields[1], fields[2], fields[1]
	case 4:
		t, r, b, l = fields[0], fields[1], fields[2], fields[3]
	default:
		return nil
	}
	vals := map[string]string{"top": t, "right": r, "bottom": b, "left": l}
	out := make([]Declaration, 0, 4)
	for _, side := range boxSides {
		out = append(out, Declaration{Property: "border-" + side + "-" + component, Value: vals[side], Important: important})
	}
	return out
}

// four-sided collapse: choose the shortest equivalent value-list form.
func collapseFourSided(top, right, bottom, left string) string {
	if top == right && right == bottom && bottom == left {
		return top
	}
	if top == bottom && right == left {
		return top + " " + right
	}
	if right == left {
		return top + " " + right + " " + bottom
	}
	return top + " " + right + " " + bottom + " " + left
}

// ContractFourSided synthesizes a margin/padding-style shorthand from its
// four longhands. It declines (returns "", false, false) unless all four sides
// are present with an identical important flag.
func ContractFourSided(sides map[string]Declaration) (string, bool, bool) {
	if len(sides) != 4 {
		return "", false, false
	}
	first, ok := sides["top"]
	if !ok {
		return "", false, false
	}
	important := first.Important
	for _, side := range boxSides {
		d, ok := sides[side]
		if !ok || d.Important != important {
			return "", false, false
		}
	}
	return collapseFourSided(sides["top"].Value, sides["right"].Value, sides["bottom"].Value, sides["left"].Value), important, true
}

// ContractBorder synthesizes the `border` composite from the flat
// border-width/border-style/border-color triple. Per spec it requires
// border-style at minimum and declines if any component is itself a
// multi-value (whitespace-containing) four-sided form, since CSS forbids
// embedding that shape inside the composite.
func ContractBorder(width, style, color *Declaration) (string, bool, bool) {
	if style == nil {
		return "", false, false
	}
	important := style.Important
	if width != nil && (width.Important != important || strings.ContainsAny(width.Value, " ")) {
		return "", false, false
	}
	if strings.ContainsAny(style.Value, " ") {
		return "", false, false
	}
	if color != nil && (color.Important != important || strings.ContainsAny(color.Value, " ")) {
		return "", false, false
	}
	parts := []string{}
	if width != nil {
		parts = append(parts, width.Value)
	}
	parts = append(parts, style.Value)
	if color != nil {
		parts = append(parts, color.Value)
	}
	return strings.Join(parts, " "), important, true
}

// ContractFont synthesizes `font` from its longhands. Requires font-size
// and font-family at minimum; omits optional parts equal to "normal", and
// includes line-height as size/line-height only when present and non-default.
func ContractFont(style, variant, weight, size, lineHeight, family *Declaration) (string, bool, bool) {
	if size == nil || family == nil {
		return "", false, false
	}
	important := size.Important
	if family.Important != important {
		return "", false, false
	}
	for _, d := range []*Declaration{style, variant, weight, lineHeight} {
		if d != nil && d.Important != important {
			return "", false, false
		}
	}
	var head []string
	if style != nil && style.Important == important && !strings.EqualFold(style.Value, "normal") {
		head = append(head, style.Value)
	}
	if variant != nil && variant.Important == important && !strings.EqualFold(variant.Value, "normal") {
		head = append(head, variant.Value)
	}
	if weight != nil && weight.Important == important && !strings.EqualFold(weight.Value, "normal") {
		head = append(head, weight.Value)
	}
	sizePart := size.Value
	if lineHeight != nil && lineHeight.Important == important && lineHeight.Value != "" && !strings.EqualFold(lineHeight.Value, "normal") {
		sizePart = sizePart + "/" + lineHeight.Value
	}
	head = append(head, sizePart, family.Value)
	return strings.Join(head, " "), important, true
}

// ContractListStyle synthesizes `list-style` from its present components,
// emitted in type/position/image order.
func ContractListStyle(listType, position, image *Declaration) (string, bool, bool) {
	var parts []string
	var important bool
	first := true
	check := func(d *Declaration) bool {
		if d == nil {
			return true
		}
		if first {
			important = d.Important
			first = false
			return true
		}
		return d.Important == important
	}
	if !check(listType) || !check(position) || !check(image) {
		return "", false, false
	}
	if listType != nil {
		parts = append(parts, listType.Value)
	}
	if position != nil {
		parts = append(parts, position.Value)
	}
	if image != nil {
		parts = append(parts, image.Value)
	}
	if len(parts) == 0 {
		return "", false, false
	}
	return strings.Join(parts, " "), important, true
}

// backgroundDefaults mirrors expandBackground's fill-in values, used so
// ContractBackground can omit components that match their default.
var backgroundDefaults = map[string]string{
	"background-color":      "transparent",
	"background-image":      "none",
	"background-repeat":     "repeat",
	"background-attachment": "scroll",
	"background-position":   "0% 0%",
}

// ContractBackground synthesizes `background` from its longhands. If all
// five base properties are present, each matches its default, and no size
// is given, the result is the literal "none"; otherwise defaults are
// omitted and size, if present, is appended after the remaining components
// as " / value".
func ContractBackground(props map[string]Declaration, size *Declaration) (string, bool, bool) {
	required := []string{"background-color", "background-image", "background-repeat", "background-attachment", "background-position"}
	for _, p := range required {
		if _, ok := props[p]; !ok {
			return "", false, false
		}
	}
	important := props["background-color"].Important
	for _, p := range required {
		if props[p].Important != important {
			return "", false, false
		}
	}
	if size != nil && size.Important != important {
		return "", false, false
	}
	allDefault := true
	for _, p := range required {
		if props[p].Value != backgroundDefaults[p] {
			allDefault = false
			break
		}
	}
	if allDefault && size == nil {
		return "none", important, true
	}
	var parts []string
	for _, p := range required {
		if props[p].Value != backgroundDefaults[p] {
			parts = append(parts, props[p].Value)
		}
	}
	value := strings.Join(parts, " ")
	if size != nil {
		value = value + " / " + size.Value
	}
	return value, important, true
}
