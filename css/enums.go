package css

// NestingStyle records whether a nested selector was written relative to
// its parent with an explicit `&` or as an implicit descendant combinator.
// ENUM(implicit, explicit)
type NestingStyle int

// AtRuleKind distinguishes the two content shapes an AtRule can carry.
// ENUM(rules, declarations)
type AtRuleKind int

// ColorFormat names every color notation the parser/formatter pair supports.
// ENUM(hex, rgb, rgba, hsl, hsla, hwb, hwba, oklab, oklch, any)
type ColorFormat int

// ColorVariant selects modern function-notation (space-separated) vs.
// legacy notation (comma-separated) when formatting rgb/hsl/hwb colors.
// ENUM(modern, legacy)
type ColorVariant int
