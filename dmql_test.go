package dmql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	q := Parse("USE DATABASE sales FROM orders WHERE amount > 100")

	require.False(t, q.HasErrors(), "errors: %v", q.Errors)
	assert.Equal(t, "sales", q.Database)
	assert.Equal(t, []string{"orders"}, q.Tables)
}

func TestValidate(t *testing.T) {
	valid, errs := Validate("FROM customers")
	assert.True(t, valid)
	assert.Empty(t, errs)

	valid, errs = Validate("INVALID SYNTAX HERE!!!")
	assert.False(t, valid)
	assert.NotEmpty(t, errs)
}

func TestTranslate(t *testing.T) {
	q := Parse("USE DATABASE sales FROM customers")
	require.False(t, q.HasErrors())

	resolver := ResolverFunc(func(name string) bool { return name == "sales__customers" })
	sql := Translate(q, resolver)
	assert.Equal(t, "SELECT * FROM sales__customers", sql)
}

func TestParseWithDiagnostics(t *testing.T) {
	q, diags := ParseWithDiagnostics("USE DATABASE")

	assert.True(t, q.HasErrors())
	assert.True(t, diags.HasErrors())
	assert.NotEmpty(t, diags.ToPrettyString("query", "USE DATABASE"))
}

func TestConcurrentParsing(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				q := Parse("FROM customers WHERE age > 25 MINE CLUSTER K = 3")
				if q.HasErrors() {
					t.Error("unexpected parse errors")
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
