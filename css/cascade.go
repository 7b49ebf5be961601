package css

import (
	"sort"
	"strings"
)

// winner tracks the current best declaration for one property during
// cascade resolution.
type winner struct {
	value       string
	important   bool
	specificity int
}

// Cascade folds an ordered rule sequence into the fully-resolved set of
// declarations for a hypothetical element matched by every rule in the
// sequence. Matching selectors against an actual element tree is the
// caller's responsibility; Cascade only applies specificity + !important
// ordering over whatever rules it's handed.
func Cascade(rules []*Rule) []Declaration {
	winners := make(map[string]*winner)

	var ingest func(prop, value string, important bool, specificity int)
	ingest = func(prop, value string, important bool, specificity int) {
		prop = strings.ToLower(prop)
		if expanded := ExpandShorthand(prop, value, important); len(expanded) > 0 {
			for _, d := range expanded {
				ingest(d.Property, d.Value, d.Important, specificity)
			}
			return
		}
		cur, exists := winners[prop]
		candidate := &winner{value: value, important: important, specificity: specificity}
		if !exists {
			winners[prop] = candidate
			return
		}
		if candidate.important && !cur.important {
			winners[prop] = candidate
			return
		}
		if cur.important && !candidate.important {
			return
		}
		if candidate.specificity >= cur.specificity {
			winners[prop] = candidate
		}
	}

	for _, r := range rules {
		spec := r.Specificity()
		for _, d := range r.Declarations {
			ingest(d.Property, d.Value, d.Important, spec)
		}
	}

	result := make(map[string]Declaration, len(winners))
	for prop, w := range winners {
		result[prop] = Declaration{Property: prop, Value: w.value, Important: w.important}
	}
	reconstructShorthands(result)

	props := make([]string, 0, len(result))
	for prop := range result {
		props = append(props, prop)
	}
	sort.Strings(props)

	out := make([]Declaration, 0, len(result))
	for _, prop := range props {
		out = append(out, result[prop])
	}
	return out
}

// reconstructShorthands attempts to recompose shorthand families from the
// flattened longhand set, in the order margin, padding, border
// width/style/color, border composite, font, list-style, background,
// removing the contributing longhands on success.
func reconstructShorthands(props map[string]Declaration) {
	reconstructFourSided(props, "margin")
	reconstructFourSided(props, "padding")
	reconstructBorderComponent(props, "width")
	reconstructBorderComponent(props, "style")
	reconstructBorderComponent(props, "color")
	reconstructBorderComposite(props)
	reconstructFont(props)
	reconstructListStyle(props)
	reconstructBackground(props)
}

func reconstructFourSided(props map[string]Declaration, prefix string) {
	sides := make(map[string]Declaration, 4)
	for _, side := range boxSides {
		d, ok := props[prefix+"-"+side]
		if !ok {
			return
		}
		sides[side] = d
	}
	value, important, ok := ContractFourSided(sides)
	if !ok {
		return
	}
	for _, side := range boxSides {
		delete(props, prefix+"-"+side)
	}
	props[prefix] = Declaration{Property: prefix, Value: value, Important: important}
}

func reconstructBorderComponent(props map[string]Declaration, component string) {
	sides := make(map[string]Declaration, 4)
	for _, side := range boxSides {
		key := "border-" + side + "-" + component
		d, ok := props[key]
		if !ok {
			return
		}
		sides[side] = d
	}
	value, important, ok := ContractFourSided(sides)
	if !ok {
		return
	}
	for _, side := range boxSides {
		delete(props, "border-"+side+"-"+component)
	}
	props["border-"+component] = Declaration{Property: "border-" + component, Value: value, Important: important}
}

func reconstructBorderComposite(props map[string]Declaration) {
	widthD, hasWidth := props["border-width"]
	styleD, hasStyle := props["border-style"]
	colorD, hasColor := props["border-color"]
	if !hasStyle {
		return
	}
	var width, color *Declaration
	if hasWidth {
		width = &widthD
	}
	if hasColor {
		color = &colorD
	}
	value, important, ok := ContractBorder(width, &styleD, color)
	if !ok {
		return
	}
	delete(props, "border-width")
	delete(props, "border-style")
	delete(props, "border-color")
	props["border"] = Declaration{Property: "border", Value: value, Important: important}
}

func reconstructFont(props map[string]Declaration) {
	size, hasSize := props["font-size"]
	family, hasFamily := props["font-family"]
	if !hasSize || !hasFamily {
		return
	}
	var style, variant, weight, lineHeight *Declaration
	if d, ok := props["font-style"]; ok {
		style = &d
	}
	if d, ok := props["font-variant"]; ok {
		variant = &d
	}
	if d, ok := props["font-weight"]; ok {
		weight = &d
	}
	if d, ok := props["line-height"]; ok {
		lineHeight = &d
	}
	value, important, ok := ContractFont(style, variant, weight, &size, lineHeight, &family)
	if !ok {
		return
	}
	delete(props, "font-style")
	delete(props, "font-variant")
	delete(props, "font-weight")
	delete(props, "font-size")
	delete(props, "line-height")
	delete(props, "font-family")
	props["font"] = Declaration{Property: "font", Value: value, Important: important}
}

func reconstructListStyle(props map[string]Declaration) {
	lt, hasType := props["list-style-type"]
	pos, hasPos := props["list-style-position"]
	img, hasImg := props["list-style-image"]
	if !hasType && !hasPos && !hasImg {
		return
	}
	var ltp, posp, imgp *Declaration
	if hasType {
		ltp = &lt
	}
	if hasPos {
		posp = &pos
	}
	if hasImg {
		imgp = &img
	}
	value, important, ok := ContractListStyle(ltp, posp, imgp)
	if !ok {
		return
	}
	delete(props, "list-style-type")
	delete(props, "list-style-position")
	delete(props, "list-style-image")
	props["list-style"] = Declaration{Property: "list-style", Value: value, Important: important}
}

func reconstructBackground(props map[string]Declaration) {
	required := []string{"background-color", "background-image", "background-repeat", "background-attachment", "background-position"}
	sub := make(map[string]Declaration, 5)
	for _, p := range required {
		d, ok := props[p]
		if !ok {
			return
		}
		sub[p] = d
	}
	var size *Declaration
	if d, ok := props["background-size"]; ok {
		size = &d
	}
	value, important, ok := ContractBackground(sub, size)
	if !ok {
		return
	}
	for _, p := range required {
		delete(props, p)
	}
	delete(props, "background-size")
	props["background"] = Declaration{Property: "background", Value: value, Important: important}
}
