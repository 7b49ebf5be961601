package css

import (
	"bytes"
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser turns CSS source text into a Stylesheet, built directly on
// tdewolff/parse/v2's byte-oriented CSS tokenizer.
type Parser struct {
	log    *zap.Logger
	limits Limits
	src    []byte
}

// NewParser creates a CSS parser. A nil logger is replaced with a no-op
// logger; a zero Limits is replaced with DefaultLimits.
func NewParser(log *zap.Logger, limits Limits) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}
	return &Parser{log: log.Named("css-parser"), limits: limits}
}

// Parse parses CSS text into a Stylesheet. The optional source parameter
// identifies what's being parsed, for debug logging only.
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	sheet := NewStylesheet()
	p.src = data
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}
	if len(data) > p.limits.MaxAtRuleBlockLength {
		return nil, &SizeError{What: "stylesheet", Size: len(data), Max: p.limits.MaxAtRuleBlockLength}
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	if err := p.parseBlock(parser, sheet, 0, nil); err != nil {
		return nil, err
	}
	return sheet, nil
}

var keyframesSuffix = "keyframes"

func atRuleName(raw string) string {
	return strings.ToLower(strings.TrimPrefix(raw, "@"))
}

// parseBlock consumes grammar tokens from parser until EndAtRuleGrammar (or
// ErrorGrammar/EOF at the top level), appending produced rules/at-rules to
// sheet, tagging rule.MediaTypes with mediaTypes when non-empty. It is the
// single recursive core shared by the top-level parse, @media, @supports/
// @layer/@container/@scope flattening, and @keyframes' inner rule list.
func (p *Parser) parseBlock(parser *css.Parser, sheet *Stylesheet, depth int, mediaTypes []string) error {
	if depth > p.limits.MaxParseDepth {
		return &DepthError{Depth: depth, Max: p.limits.MaxParseDepth}
	}

	var currentSelectors []string
	lastGrammar := "stylesheet"
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				return p.newParseError(err, lastGrammar)
			}
			return nil

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			return nil

		case css.BeginAtRuleGrammar:
			name := atRuleName(string(data))
			if err := p.handleAtRule(parser, sheet, name, depth); err != nil {
				return err
			}

		case css.AtRuleGrammar:
			name := atRuleName(string(data))
			switch name {
			case "import":
				// Recorded via ExtractImports; nothing further to do here.
			case "charset":
				for _, t := range parser.Values() {
					if t.TokenType == css.StringToken {
						sheet.Charset = unquote(string(t.Data))
					}
				}
			default:
				msg := fmt.Sprintf("skipping at-rule without block: %q", name)
				sheet.AddWarning(msg)
				p.log.Debug(msg, zap.String("rule", name))
			}

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			currentSelectors = p.splitSelectorList(data, parser.Values())
			if gt == css.BeginRulesetGrammar {
				decls, nested, err := p.parseRuleBody(sheet, parser, depth+1)
				if err != nil {
					return err
				}
				for _, selStr := range currentSelectors {
					selStr = strings.TrimSpace(selStr)
					if selStr == "" {
						continue
					}
					rule := sheet.AddRule(Rule{
						Selector:     selStr,
						Declarations: decls,
						MediaTypes:   mediaTypes,
					})
					p.addNestedRules(sheet, rule.ID, rule.Selector, nested, mediaTypes)
				}
				currentSelectors = nil
			}
		}
		lastGrammar = fmt.Sprintf("%v", gt)
	}
}

// newParseError wraps a non-EOF tokenizer error into a *ParseError carrying
// the byte offset/length of the whole source (the tokenizer only ever
// reports these as an end-of-input condition, per spec.md §4.1's "non-final
// DFA state at input end") plus up to 20 bytes of preceding context and the
// grammar construct last recognized before the error.
func (p *Parser) newParseError(err error, state string) error {
	n := len(p.src)
	ctxStart := n - 20
	if ctxStart < 0 {
		ctxStart = 0
	}
	return &ParseError{
		Offset:  n,
		Length:  n,
		State:   state,
		Context: string(p.src[ctxStart:n]),
		Reason:  err.Error(),
	}
}

// nestedRuleRaw captures a nested ruleset found inside another rule's body,
// before its parent has been assigned a Stylesheet id. selectors holds the
// comma-split, source-relative (possibly "&"-bearing) selector list; it is
// resolved against the parent's fully-qualified selector once the parent
// rule exists.
type nestedRuleRaw struct {
	selectors []string
	decls     []Declaration
	children  []nestedRuleRaw
}

// parseRuleBody consumes one rule's body: its own declarations plus any
// nested rulesets (CSS nesting, e.g. `&:hover { ... }` or a bare
// descendant-style nested selector). It mirrors parseDeclarationGrammar but
// additionally recurses into BeginRulesetGrammar the same way parseBlock
// does at the top level, since the tokenizer emits the same grammar token
// types regardless of nesting depth.
func (p *Parser) parseRuleBody(sheet *Stylesheet, parser *css.Parser, depth int) ([]Declaration, []nestedRuleRaw, error) {
	if depth > p.limits.MaxParseDepth {
		return nil, nil, &DepthError{Depth: depth, Max: p.limits.MaxParseDepth}
	}
	var decls []Declaration
	var nested []nestedRuleRaw
	blockSize := 0
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar, css.EndRulesetGrammar:
			return decls, nested, nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			prop := strings.ToLower(string(data))
			d, ok, err := p.readDeclarationToken(sheet, prop, parser.Values(), &blockSize)
			if err != nil {
				return nil, nil, err
			}
			if ok {
				decls = append(decls, d)
			}

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			selectors := p.splitSelectorList(data, parser.Values())
			if gt == css.BeginRulesetGrammar {
				childDecls, childNested, err := p.parseRuleBody(sheet, parser, depth+1)
				if err != nil {
					return nil, nil, err
				}
				nested = append(nested, nestedRuleRaw{selectors: selectors, decls: childDecls, children: childNested})
			}
		}
	}
}

// resolveNestedSelector computes the fully-qualified selector for a nested
// rule and classifies its nesting style: explicit when the raw selector
// references the parent with "&", implicit when it's a bare descendant.
func resolveNestedSelector(parentSelector, raw string) (resolved string, style NestingStyle) {
	if strings.Contains(raw, "&") {
		return strings.ReplaceAll(raw, "&", parentSelector), NestingStyleExplicit
	}
	return parentSelector + " " + raw, NestingStyleImplicit
}

// addNestedRules registers each raw nested rule (recursively) under the
// given already-assigned parent id/selector, resolving selectors per
// resolveNestedSelector and inheriting the parent's media scope.
func (p *Parser) addNestedRules(sheet *Stylesheet, parentID int, parentSelector string, nested []nestedRuleRaw, mediaTypes []string) {
	for _, nr := range nested {
		for _, raw := range nr.selectors {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			resolved, style := resolveNestedSelector(parentSelector, raw)
			pid := parentID
			child := sheet.AddRule(Rule{
				Selector:     resolved,
				Declarations: nr.decls,
				ParentRuleID: &pid,
				NestingStyle: style,
				MediaTypes:   mediaTypes,
			})
			p.addNestedRules(sheet, child.ID, child.Selector, nr.children, mediaTypes)
		}
	}
}

// handleAtRule dispatches a nested at-rule per its name, per spec's
// at-rule handling table.
func (p *Parser) handleAtRule(parser *css.Parser, sheet *Stylesheet, name string, depth int) error {
	switch {
	case name == "media":
		prelude := collectIdentText(parser.Values())
		mediaTypes := ParseMediaTypes(prelude)
		if err := p.parseBlock(parser, sheet, depth+1, mediaTypes); err != nil {
			return err
		}
		p.log.Debug("parsed @media block", zap.String("query", prelude))
		return nil

	case strings.HasSuffix(name, keyframesSuffix):
		preludeRaw := collectRawText(parser.Values())
		inner := NewStylesheet()
		if err := p.parseBlock(parser, inner, depth+1, nil); err != nil {
			return err
		}
		rules := make([]Rule, 0, len(inner.Items))
		for _, item := range inner.Items {
			if item.Rule != nil {
				rules = append(rules, *item.Rule)
			}
		}
		sheet.AddAtRule(AtRule{
			Selector: "@" + name + " " + preludeRaw,
			Kind:     AtRuleKindRules,
			Rules:    rules,
		})
		return nil

	case name == "font-face" || name == "property" || name == "page" || name == "counter-style":
		decls, err := p.parseDeclarationGrammar(sheet, parser)
		if err != nil {
			return err
		}
		sheet.AddAtRule(AtRule{
			Selector:     "@" + name,
			Kind:         AtRuleKindDeclarations,
			Declarations: decls,
		})
		return nil

	default:
		// @supports, @layer, @container, @scope, and anything else with a
		// block: recurse and splice the produced rules straight into the
		// parent, without an AtRule wrapper.
		return p.parseBlock(parser, sheet, depth+1, nil)
	}
}

// parseDeclarationGrammar consumes DeclarationGrammar/CustomPropertyGrammar
// tokens until EndAtRuleGrammar/EndRulesetGrammar, building an ordered
// Declaration list the same way §4.2 describes for a raw substring, but
// fed token-by-token from the tokenizer instead of a captured string.
func (p *Parser) parseDeclarationGrammar(sheet *Stylesheet, parser *css.Parser) ([]Declaration, error) {
	var decls []Declaration
	blockSize := 0
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar, css.EndRulesetGrammar:
			return decls, nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			prop := strings.ToLower(string(data))
			d, ok, err := p.readDeclarationToken(sheet, prop, parser.Values(), &blockSize)
			if err != nil {
				return nil, err
			}
			if ok {
				decls = append(decls, d)
			}
		}
	}
}

// readDeclarationToken classifies one already-tokenized property/value pair
// into a Declaration, applying the size bounds and !important handling
// shared by parseDeclarationGrammar (flat at-rule bodies) and parseRuleBody
// (rule bodies, which may also contain nested rulesets). ok is false for a
// declaration that should be silently dropped (oversized name, empty value
// after !important stripping, oversized value) without that being an error;
// each drop is both logged at Debug and recorded on sheet.Warnings, the same
// pairing the teacher uses for its own recoverable selector skips.
func (p *Parser) readDeclarationToken(sheet *Stylesheet, prop string, values []css.Token, blockSize *int) (Declaration, bool, error) {
	raw := collectRawText(values)
	*blockSize += len(prop) + len(raw)
	if *blockSize > p.limits.MaxAtRuleBlockLength {
		return Declaration{}, false, &SizeError{What: "declaration block", Size: *blockSize, Max: p.limits.MaxAtRuleBlockLength}
	}
	if len(prop) > p.limits.MaxPropertyNameLength {
		msg := fmt.Sprintf("dropped declaration: property name exceeds %d bytes", p.limits.MaxPropertyNameLength)
		sheet.AddWarning(msg)
		p.log.Debug(msg, zap.Int("length", len(prop)))
		return Declaration{}, false, nil
	}
	important := false
	if idx := findImportantTokens(values); idx >= 0 {
		important = true
		values = values[:idx]
		raw = collectRawText(values)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		msg := fmt.Sprintf("dropped declaration: empty value for property %q", prop)
		sheet.AddWarning(msg)
		p.log.Debug(msg, zap.String("property", prop))
		return Declaration{}, false, nil
	}
	if len(raw) > p.limits.MaxPropertyValueLength {
		msg := fmt.Sprintf("dropped declaration: value for property %q exceeds %d bytes", prop, p.limits.MaxPropertyValueLength)
		sheet.AddWarning(msg)
		p.log.Debug(msg, zap.String("property", prop), zap.Int("length", len(raw)))
		return Declaration{}, false, nil
	}
	return Declaration{Property: prop, Value: raw, Important: important}, true, nil
}

// findImportantTokens locates a trailing "!important" in a token stream
// (the '!' DelimToken followed by an "important" IdentToken, ignoring
// whitespace), returning the index at which the value tokens end, or -1.
func findImportantTokens(values []css.Token) int {
	n := len(values)
	end := n
	for end > 0 && values[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end < 2 {
		return -1
	}
	ident := values[end-1]
	if ident.TokenType != css.IdentToken || !strings.EqualFold(string(ident.Data), "important") {
		return -1
	}
	j := end - 2
	for j >= 0 && values[j].TokenType == css.WhitespaceToken {
		j--
	}
	if j < 0 {
		return -1
	}
	bang := values[j]
	if bang.TokenType != css.DelimToken || string(bang.Data) != "!" {
		return -1
	}
	return j
}

// collectRawText reconstructs the source text of a token span, collapsing
// internal whitespace runs to a single space.
func collectRawText(tokens []css.Token) string {
	var sb strings.Builder
	lastWasSpace := true
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if !lastWasSpace {
				sb.WriteByte(' ')
				lastWasSpace = true
			}
			continue
		}
		sb.Write(t.Data)
		lastWasSpace = false
	}
	return strings.TrimSpace(sb.String())
}

// collectIdentText is collectRawText restricted to what's useful for a
// media-query prelude: every token's raw text, parens included.
func collectIdentText(tokens []css.Token) string {
	return collectRawText(tokens)
}

// splitSelectorList builds the full selector-list string from grammar data
// plus its trailing values, then splits it on top-level commas.
func (p *Parser) splitSelectorList(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	full := sb.String()

	var out []string
	depth := 0
	start := 0
	runes := []rune(full)
	for i, r := range runes {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(string(runes[start:i])))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(string(runes[start:])))
	return out
}

// unquote removes surrounding single or double quotes from s.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
