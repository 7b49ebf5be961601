// Package css parses, resolves, and re-emits CSS stylesheets.
//
// It covers the full pipeline from raw CSS text to a cascaded,
// flattened property map and back:
//
// # Parsing
//
//   - Rulesets, at-rules (@media, @supports, @keyframes, @font-face,
//     @property, @page, @counter-style, @layer, @container, @scope,
//     @import, @charset), and nested rulesets (both "&"-explicit and
//     implicit-descendant forms)
//   - Declaration blocks, including custom properties and !important
//   - Depth- and size-bounded parsing via Limits, surfaced as
//     DepthError / SizeError rather than silent truncation
//
// # Resolution
//
//   - Specificity (css/selector.go) and cascade ordering (css/cascade.go)
//   - Shorthand expansion and contraction (css/shorthand.go) for the box
//     model, border, font, list-style, and background properties
//   - Color parsing, conversion, and format rewriting across hex, rgb,
//     hsl, hwb, oklab, and oklch (css/color.go, css/convert.go)
//
// # Serialization
//
//	p := css.NewParser(logger, css.DefaultLimits())
//	sheet, err := p.Parse(data, "input.css")
//
//	out := css.Serialize(sheet, css.SerializeOptions{Compact: true})
//
// css.Dump renders a Stylesheet as an indented tree for debugging; it is
// not part of the serialization contract.
package css
