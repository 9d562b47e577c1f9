package glint

import (
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// attrBits is a bitmask over the boolean text attributes. A Style keeps
// two masks: which attributes are explicitly specified, and their
// values. That distinguishes "unset" from "explicitly off", which is
// what makes overlay combination well defined.
type attrBits uint16

const (
	attrBold attrBits = 1 << iota
	attrDim
	attrItalic
	attrUnderline
	attrBlink
	attrReverse
	attrConceal
	attrStrike

	attrAll = attrStrike<<1 - 1
)

// attrOrder fixes the canonical ordering of attributes in definitions.
var attrOrder = []struct {
	bit  attrBits
	name string
	on   string // SGR code enabling the attribute
	off  string // SGR code explicitly disabling it
}{
	{attrBold, "bold", "1", "22"},
	{attrDim, "dim", "2", "22"},
	{attrItalic, "italic", "3", "23"},
	{attrUnderline, "underline", "4", "24"},
	{attrBlink, "blink", "5", "25"},
	{attrReverse, "reverse", "7", "27"},
	{attrConceal, "conceal", "8", "28"},
	{attrStrike, "strike", "9", "29"},
}

var attrByName = func() map[string]attrBits {
	m := make(map[string]attrBits, len(attrOrder))
	for _, a := range attrOrder {
		m[a.name] = a.bit
	}
	return m
}()

// Style describes terminal text styling: foreground and background
// colors, boolean attributes, and an optional hyperlink. Styles are
// immutable after construction; every modifier returns a new value.
// Use the With* builders, [ParseStyle], or [Style.Combine].
type Style struct {
	fg, bg     Color
	hasFg      bool
	hasBg      bool
	set        attrBits // which attributes are specified
	values     attrBits // their values; always a subset of set
	link       string
	hasLink    bool
	cachedHash atomic.Uint64 // canonical hash; 0 = not yet computed
}

// NullStyle is the shared "no styling" singleton. Combine treats it as
// the identity without allocating.
var NullStyle = &Style{}

// clone copies the style fields, dropping the cached hash.
func (s *Style) clone() *Style {
	return &Style{
		fg: s.fg, bg: s.bg,
		hasFg: s.hasFg, hasBg: s.hasBg,
		set: s.set, values: s.values & s.set,
		link: s.link, hasLink: s.hasLink,
	}
}

// IsNull reports whether s specifies nothing at all.
func (s *Style) IsNull() bool {
	return s == nil || (!s.hasFg && !s.hasBg && s.set == 0 && !s.hasLink)
}

// Foreground returns a copy of s with the foreground color set.
func (s *Style) Foreground(c Color) *Style {
	out := s.clone()
	out.fg = c
	out.hasFg = true
	return out
}

// Background returns a copy of s with the background color set.
func (s *Style) Background(c Color) *Style {
	out := s.clone()
	out.bg = c
	out.hasBg = true
	return out
}

// Link returns a copy of s with a hyperlink target set.
func (s *Style) Link(url string) *Style {
	out := s.clone()
	out.link = url
	out.hasLink = true
	return out
}

func (s *Style) withAttr(bit attrBits, on bool) *Style {
	out := s.clone()
	out.set |= bit
	if on {
		out.values |= bit
	} else {
		out.values &^= bit
	}
	return out
}

// Bold returns a copy of s with bold explicitly set to on.
func (s *Style) Bold(on bool) *Style { return s.withAttr(attrBold, on) }

// Dim returns a copy of s with dim explicitly set to on.
func (s *Style) Dim(on bool) *Style { return s.withAttr(attrDim, on) }

// Italic returns a copy of s with italic explicitly set to on.
func (s *Style) Italic(on bool) *Style { return s.withAttr(attrItalic, on) }

// Underline returns a copy of s with underline explicitly set to on.
func (s *Style) Underline(on bool) *Style { return s.withAttr(attrUnderline, on) }

// Blink returns a copy of s with blink explicitly set to on.
func (s *Style) Blink(on bool) *Style { return s.withAttr(attrBlink, on) }

// Reverse returns a copy of s with reverse video explicitly set to on.
func (s *Style) Reverse(on bool) *Style { return s.withAttr(attrReverse, on) }

// Conceal returns a copy of s with conceal explicitly set to on.
func (s *Style) Conceal(on bool) *Style { return s.withAttr(attrConceal, on) }

// Strike returns a copy of s with strikethrough explicitly set to on.
func (s *Style) Strike(on bool) *Style { return s.withAttr(attrStrike, on) }

// HasBold reports whether bold is explicitly specified and on.
func (s *Style) HasBold() bool { return s.set&s.values&attrBold != 0 }

// HasItalic reports whether italic is explicitly specified and on.
func (s *Style) HasItalic() bool { return s.set&s.values&attrItalic != 0 }

// ForegroundColor returns the foreground color and whether it is set.
func (s *Style) ForegroundColor() (Color, bool) { return s.fg, s.hasFg }

// BackgroundColor returns the background color and whether it is set.
func (s *Style) BackgroundColor() (Color, bool) { return s.bg, s.hasBg }

// Hyperlink returns the link target and whether it is set.
func (s *Style) Hyperlink() (string, bool) { return s.link, s.hasLink }

// Combine overlays top onto s: for every attribute, color, and the
// link, top's explicit value wins and s fills the gaps. Neither
// operand is mutated. Combining with the null style is the identity
// in both directions. Combine is deliberately not associative:
// resolution is "rightmost explicit value wins", evaluated
// left-to-right down an ancestor stack.
func (s *Style) Combine(top *Style) *Style {
	if top.IsNull() {
		if s == nil {
			return NullStyle
		}
		return s
	}
	if s.IsNull() {
		return top
	}
	out := s.clone()
	if top.hasFg {
		out.fg = top.fg
		out.hasFg = true
	}
	if top.hasBg {
		out.bg = top.bg
		out.hasBg = true
	}
	out.set |= top.set
	out.values = (out.values &^ top.set) | (top.values & top.set)
	if top.hasLink {
		out.link = top.link
		out.hasLink = true
	}
	return out
}

// Equal reports structural equality over the resolved attribute tuple.
func (s *Style) Equal(other *Style) bool {
	if s == nil || other == nil {
		return s.IsNull() && other.IsNull()
	}
	return s.hasFg == other.hasFg && (!s.hasFg || s.fg == other.fg) &&
		s.hasBg == other.hasBg && (!s.hasBg || s.bg == other.bg) &&
		s.set == other.set && s.values&s.set == other.values&other.set &&
		s.hasLink == other.hasLink && (!s.hasLink || s.link == other.link)
}

// Hash returns a canonical hash of the resolved attribute tuple,
// computed once per Style and memoized.
func (s *Style) Hash() uint64 {
	if h := s.cachedHash.Load(); h != 0 {
		return h
	}
	h := xxhash.Sum64String(s.String())
	if h == 0 {
		h = 1
	}
	s.cachedHash.Store(h)
	return h
}

// String returns the canonical definition, re-parseable by ParseStyle.
// The null style renders as "none".
func (s *Style) String() string {
	if s.IsNull() {
		return "none"
	}
	var parts []string
	for _, a := range attrOrder {
		if s.set&a.bit == 0 {
			continue
		}
		if s.values&a.bit != 0 {
			parts = append(parts, a.name)
		} else {
			parts = append(parts, "not "+a.name)
		}
	}
	if s.hasFg {
		parts = append(parts, s.fg.String())
	}
	if s.hasBg {
		parts = append(parts, "on", s.bg.String())
	}
	if s.hasLink {
		parts = append(parts, "link", s.link)
	}
	return strings.Join(parts, " ")
}

// sgrParams returns the SGR parameters selecting this style.
func (s *Style) sgrParams() []string {
	var params []string
	for _, a := range attrOrder {
		if s.set&a.bit == 0 {
			continue
		}
		if s.values&a.bit != 0 {
			params = append(params, a.on)
		} else {
			params = append(params, a.off)
		}
	}
	if s.hasFg {
		params = s.fg.appendSGR(params, false)
	}
	if s.hasBg {
		params = s.bg.appendSGR(params, true)
	}
	return params
}

// Render wraps text in the escape sequences selecting this style,
// closing them again afterwards. The null style returns text verbatim.
func (s *Style) Render(text string) string {
	if s.IsNull() {
		return text
	}
	var b strings.Builder
	params := s.sgrParams()
	if len(params) > 0 {
		b.WriteString("\x1b[")
		b.WriteString(strings.Join(params, ";"))
		b.WriteString("m")
	}
	if s.hasLink && s.link != "" {
		b.WriteString("\x1b]8;;")
		b.WriteString(s.link)
		b.WriteString("\x07")
	}
	b.WriteString(text)
	if s.hasLink && s.link != "" {
		b.WriteString("\x1b]8;;\x07")
	}
	if len(params) > 0 {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

// parseStyleDefinition parses a definition string without consulting
// the style cache. See ParseStyle for the grammar.
func parseStyleDefinition(def string) (*Style, error) {
	fields := strings.Fields(def)
	syntaxErr := func(token, reason string) error {
		return &StyleSyntaxError{Definition: def, Token: token, Reason: reason}
	}
	if len(fields) == 0 {
		return nil, syntaxErr("", "empty definition")
	}

	style := &Style{}
	sawNone := false
	for i := 0; i < len(fields); i++ {
		token := strings.ToLower(fields[i])
		switch {
		case token == "none":
			sawNone = true

		case token == "not":
			if i+1 >= len(fields) {
				return nil, syntaxErr(token, "expected attribute after \"not\"")
			}
			i++
			name := strings.ToLower(fields[i])
			bit, ok := attrByName[name]
			if !ok {
				return nil, syntaxErr(fields[i], "expected attribute after \"not\"")
			}
			style.set |= bit
			style.values &^= bit

		case token == "on":
			if i+1 >= len(fields) {
				return nil, syntaxErr(token, "expected color after \"on\"")
			}
			i++
			c, err := ParseColor(fields[i])
			if err != nil {
				return nil, syntaxErr(fields[i], err.Error())
			}
			if style.hasBg {
				return nil, syntaxErr(fields[i], "two background colors given")
			}
			style.bg = c
			style.hasBg = true

		case token == "link":
			if i+1 >= len(fields) {
				return nil, syntaxErr(token, "expected URL after \"link\"")
			}
			i++
			style.link = fields[i]
			style.hasLink = true

		default:
			if bit, ok := attrByName[token]; ok {
				style.set |= bit
				style.values |= bit
				continue
			}
			c, err := ParseColor(fields[i])
			if err != nil {
				return nil, syntaxErr(fields[i], err.Error())
			}
			if style.hasFg {
				return nil, syntaxErr(fields[i], "two foreground colors given")
			}
			style.fg = c
			style.hasFg = true
		}
	}

	if sawNone {
		if !style.IsNull() {
			return nil, syntaxErr("none", "\"none\" cannot be combined with other tokens")
		}
		return NullStyle, nil
	}
	return style, nil
}

// styleSGRReset resets all SGR attributes and closes any open
// hyperlink. Appended to every encoded line so styling never bleeds
// into the next one.
const styleSGRReset = "\x1b[0m\x1b]8;;\x07"
