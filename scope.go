package reflow

// Scope classifies how much layout work a change requires.
// Values are totally ordered: taking the maximum over a set of changes
// is monotonic, so adding changes never lowers the required work.
//
// Because Scope derives its order from the underlying integer, variants
// compare directly: ScopeFull > ScopeResize > ScopeReshape > ScopeNone.
type Scope uint8

const (
	// ScopeNone requires repaint only (color, opacity, transform).
	ScopeNone Scope = iota
	// ScopeReshape requires re-shaping text in the containing formatting run
	// (font, size, spacing on text-bearing nodes).
	ScopeReshape
	// ScopeResize requires recomputing this node's intrinsic size or local
	// position without changing the flow algorithm.
	ScopeResize
	// ScopeFull requires relaying out the whole subtree
	// (display, position scheme, float, flex parameters).
	ScopeFull
)

// String returns the scope name for logs and test output.
func (s Scope) String() string {
	switch s {
	case ScopeNone:
		return "none"
	case ScopeReshape:
		return "reshape"
	case ScopeResize:
		return "resize"
	case ScopeFull:
		return "full"
	}
	return "invalid"
}

func maxScope(a, b Scope) Scope {
	if b > a {
		return b
	}
	return a
}

// Property identifies a style property on a node.
// PropUnknown stands in for any identifier the engine does not model;
// it classifies as ScopeFull so an unmodeled property can never be missed.
type Property uint8

const (
	PropUnknown Property = iota

	// Paint-only properties.
	PropColor
	PropBackgroundColor
	PropOpacity
	PropTransform
	PropVisibility
	PropBorderColor
	PropBoxShadow
	PropCursor

	// Text-shaping properties.
	PropFontFamily
	PropFontSize
	PropFontWeight
	PropFontStyle
	PropLetterSpacing
	PropWordSpacing
	PropLineHeight
	PropTabSize

	// Intrinsic-size / local-position properties.
	PropWidth
	PropHeight
	PropMinWidth
	PropMinHeight
	PropMaxWidth
	PropMaxHeight
	PropPaddingTop
	PropPaddingRight
	PropPaddingBottom
	PropPaddingLeft
	PropBorderTopWidth
	PropBorderRightWidth
	PropBorderBottomWidth
	PropBorderLeftWidth
	PropOverflowX
	PropOverflowY

	// Box-generation / flow properties.
	PropDisplay
	PropPosition
	PropFloat
	PropClear
	PropMarginTop
	PropMarginRight
	PropMarginBottom
	PropMarginLeft
	PropTop
	PropRight
	PropBottom
	PropLeft
	PropFlexDirection
	PropFlexGrow
	PropFlexShrink
	PropFlexBasis
	PropFlexWrap
	PropAlignItems
	PropAlignContent
	PropAlignSelf
	PropJustifyContent
	PropGap
	PropDirection
	PropWhiteSpace
	PropWritingMode

	propCount // sentinel, keep last
)

// propScopes is the single source of truth for property severity.
// Every producer (reconciliation, restyle, runtime edits) classifies
// through ScopeOf; the table is never duplicated.
var propScopes = [propCount]Scope{
	PropUnknown: ScopeFull,

	PropColor:           ScopeNone,
	PropBackgroundColor: ScopeNone,
	PropOpacity:         ScopeNone,
	PropTransform:       ScopeNone,
	PropVisibility:      ScopeNone,
	PropBorderColor:     ScopeNone,
	PropBoxShadow:       ScopeNone,
	PropCursor:          ScopeNone,

	PropFontFamily:    ScopeReshape,
	PropFontSize:      ScopeReshape,
	PropFontWeight:    ScopeReshape,
	PropFontStyle:     ScopeReshape,
	PropLetterSpacing: ScopeReshape,
	PropWordSpacing:   ScopeReshape,
	PropLineHeight:    ScopeReshape,
	PropTabSize:       ScopeReshape,

	PropWidth:             ScopeResize,
	PropHeight:            ScopeResize,
	PropMinWidth:          ScopeResize,
	PropMinHeight:         ScopeResize,
	PropMaxWidth:          ScopeResize,
	PropMaxHeight:         ScopeResize,
	PropPaddingTop:        ScopeResize,
	PropPaddingRight:      ScopeResize,
	PropPaddingBottom:     ScopeResize,
	PropPaddingLeft:       ScopeResize,
	PropBorderTopWidth:    ScopeResize,
	PropBorderRightWidth:  ScopeResize,
	PropBorderBottomWidth: ScopeResize,
	PropBorderLeftWidth:   ScopeResize,
	PropOverflowX:         ScopeResize,
	PropOverflowY:         ScopeResize,

	PropDisplay:        ScopeFull,
	PropPosition:       ScopeFull,
	PropFloat:          ScopeFull,
	PropClear:          ScopeFull,
	PropMarginTop:      ScopeFull,
	PropMarginRight:    ScopeFull,
	PropMarginBottom:   ScopeFull,
	PropMarginLeft:     ScopeFull,
	PropTop:            ScopeFull,
	PropRight:          ScopeFull,
	PropBottom:         ScopeFull,
	PropLeft:           ScopeFull,
	PropFlexDirection:  ScopeFull,
	PropFlexGrow:       ScopeFull,
	PropFlexShrink:     ScopeFull,
	PropFlexBasis:      ScopeFull,
	PropFlexWrap:       ScopeFull,
	PropAlignItems:     ScopeFull,
	PropAlignContent:   ScopeFull,
	PropAlignSelf:      ScopeFull,
	PropJustifyContent: ScopeFull,
	PropGap:            ScopeFull,
	PropDirection:      ScopeFull,
	PropWhiteSpace:     ScopeFull,
	PropWritingMode:    ScopeFull,
}

// ScopeOf returns the relayout severity of a property.
// Out-of-range values classify as ScopeFull: a property the table does not
// know may do anything, so the default biases toward extra work, never
// toward a missed update.
func ScopeOf(p Property) Scope {
	if p >= propCount {
		return ScopeFull
	}
	return propScopes[p]
}

var propNames = [propCount]string{
	PropUnknown:           "unknown",
	PropColor:             "color",
	PropBackgroundColor:   "background-color",
	PropOpacity:           "opacity",
	PropTransform:         "transform",
	PropVisibility:        "visibility",
	PropBorderColor:       "border-color",
	PropBoxShadow:         "box-shadow",
	PropCursor:            "cursor",
	PropFontFamily:        "font-family",
	PropFontSize:          "font-size",
	PropFontWeight:        "font-weight",
	PropFontStyle:         "font-style",
	PropLetterSpacing:     "letter-spacing",
	PropWordSpacing:       "word-spacing",
	PropLineHeight:        "line-height",
	PropTabSize:           "tab-size",
	PropWidth:             "width",
	PropHeight:            "height",
	PropMinWidth:          "min-width",
	PropMinHeight:         "min-height",
	PropMaxWidth:          "max-width",
	PropMaxHeight:         "max-height",
	PropPaddingTop:        "padding-top",
	PropPaddingRight:      "padding-right",
	PropPaddingBottom:     "padding-bottom",
	PropPaddingLeft:       "padding-left",
	PropBorderTopWidth:    "border-top-width",
	PropBorderRightWidth:  "border-right-width",
	PropBorderBottomWidth: "border-bottom-width",
	PropBorderLeftWidth:   "border-left-width",
	PropOverflowX:         "overflow-x",
	PropOverflowY:         "overflow-y",
	PropDisplay:           "display",
	PropPosition:          "position",
	PropFloat:             "float",
	PropClear:             "clear",
	PropMarginTop:         "margin-top",
	PropMarginRight:       "margin-right",
	PropMarginBottom:      "margin-bottom",
	PropMarginLeft:        "margin-left",
	PropTop:               "top",
	PropRight:             "right",
	PropBottom:            "bottom",
	PropLeft:              "left",
	PropFlexDirection:     "flex-direction",
	PropFlexGrow:          "flex-grow",
	PropFlexShrink:        "flex-shrink",
	PropFlexBasis:         "flex-basis",
	PropFlexWrap:          "flex-wrap",
	PropAlignItems:        "align-items",
	PropAlignContent:      "align-content",
	PropAlignSelf:         "align-self",
	PropJustifyContent:    "justify-content",
	PropGap:               "gap",
	PropDirection:         "direction",
	PropWhiteSpace:        "white-space",
	PropWritingMode:       "writing-mode",
}

// String returns the CSS-style name of the property.
func (p Property) String() string {
	if p >= propCount {
		return "unknown"
	}
	return propNames[p]
}

var propByName = func() map[string]Property {
	m := make(map[string]Property, propCount)
	for p := Property(1); p < propCount; p++ {
		m[propNames[p]] = p
	}
	return m
}()

// ParseProperty resolves a property name to its identifier.
// Unrecognized names return (PropUnknown, false); callers that keep the
// property anyway get the conservative ScopeFull classification for free.
func ParseProperty(name string) (Property, bool) {
	p, ok := propByName[name]
	if !ok {
		return PropUnknown, false
	}
	return p, true
}
