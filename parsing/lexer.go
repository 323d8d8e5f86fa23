package parsing

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// dmqlLexer defines the token rules for DMQL. Keywords are matched
// case-insensitively; numeric literals carry their own token kinds so the
// condition extractor never has to sniff digit strings. The trailing
// catch-all rule keeps tokenization total: stray characters become Unknown
// tokens that surface as positioned parse errors instead of aborting the lex.
var dmqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "Keyword", Pattern: `(?i)\b(?:ASSOCIATION_RULES|CLASSIFICATION|STATISTICS|REGRESSION|ANOMALIES|RELEVANCE|DATABASE|BETWEEN|CLUSTER|DISPLAY|GROUP|ORDER|WHERE|MINE|FROM|DESC|LIKE|NULL|WITH|AND|ASC|NOT|USE|AS|BY|IN|IS|OR|TO)\b`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Operator", Pattern: `<=|>=|!=|<>|=|<|>`},
	{Name: "Punct", Pattern: `[(),.*]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Unknown", Pattern: `.`},
})

// Token types elided from parsing. Unknown stays visible so malformed input
// fails with a position instead of being silently skipped.
var elidedTypes = []string{"Whitespace", "Comment"}

// clauseKeywords are the keywords that may open a top-level clause. The
// error-recovering parser segments the token stream at these boundaries.
var clauseKeywords = map[string]bool{
	"USE":       true,
	"RELEVANCE": true,
	"FROM":      true,
	"WHERE":     true,
	"GROUP":     true,
	"ORDER":     true,
	"MINE":      true,
	"WITH":      true,
	"DISPLAY":   true,
}
