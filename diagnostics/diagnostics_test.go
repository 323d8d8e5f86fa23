package diagnostics

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestSyntaxErrorString(t *testing.T) {
	err := NewSyntaxError("unexpected token \"FROM\"", Position{Line: 2, Column: 7})

	assert.Equal(t, `Line 2:7 - unexpected token "FROM"`, err.String())
	assert.Equal(t, Position{Line: 2, Column: 7}, err.Position())
	assert.Equal(t, `unexpected token "FROM"`, err.Message())
}

func TestDiagnosticsAccumulate(t *testing.T) {
	var d Diagnostics
	assert.False(t, d.HasErrors())
	assert.Nil(t, d.Strings())

	d.PushError(NewSyntaxError("first", Position{Line: 1, Column: 1}))
	d.PushError(NewSyntaxError("second", Position{Line: 3, Column: 9}))

	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{
		"Line 1:1 - first",
		"Line 3:9 - second",
	}, d.Strings())
	assert.Len(t, d.Errors(), 2)
}

func TestToPrettyString(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var d Diagnostics
	d.PushError(NewSyntaxError("unexpected input", Position{Line: 2, Column: 5}))

	out := d.ToPrettyString("query", "FROM customers\nWHAT now")
	assert.Contains(t, out, "error: unexpected input")
	assert.Contains(t, out, "query:2:5")
	assert.Contains(t, out, "WHAT now")
	assert.Contains(t, out, "^")
}
