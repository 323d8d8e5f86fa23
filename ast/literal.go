package ast

import "strconv"

// Literal is a typed right-hand value in a condition. Literals are produced
// once by the grammar; downstream code never re-parses their text.
//
// This is a sealed interface - only types in this package implement it.
type Literal interface {
	literalNode()
	// SQL renders the literal as SQL text: strings single-quoted, NULL as
	// the bare keyword, numerics unquoted. Embedded quotes are not escaped;
	// this is a documented limitation of the translator, not an oversight.
	SQL() string
	// String returns the plain value text without SQL quoting.
	String() string
}

// IntLit is an integer literal.
type IntLit int64

func (IntLit) literalNode()     {}
func (v IntLit) SQL() string    { return strconv.FormatInt(int64(v), 10) }
func (v IntLit) String() string { return strconv.FormatInt(int64(v), 10) }

// FloatLit is a floating-point literal.
type FloatLit float64

func (FloatLit) literalNode()     {}
func (v FloatLit) SQL() string    { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v FloatLit) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// StringLit is a string literal with quotes already stripped. The quote style
// used in source (single or double) is irrelevant to the value.
type StringLit string

func (StringLit) literalNode()     {}
func (v StringLit) SQL() string    { return "'" + string(v) + "'" }
func (v StringLit) String() string { return string(v) }

// NullLit is the NULL literal.
type NullLit struct{}

func (NullLit) literalNode()   {}
func (NullLit) SQL() string    { return "NULL" }
func (NullLit) String() string { return "NULL" }
