// Package parsing implements the DMQL language front-end: tokenization,
// clause grammar, error-recovering parsing, and reduction of the concrete
// syntax tree into the immutable ast.Query.
package parsing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/dmql/dmql-go/ast"
	"github.com/dmql/dmql-go/diagnostics"
	"github.com/dmql/dmql-go/internal/debug"
)

// clauseParser parses one clause at a time. Parsing clause-by-clause keeps
// errors local: a malformed clause is reported with its position and skipped
// while the remaining clauses still contribute to the query.
var clauseParser = participle.MustBuild[Clause](
	participle.Lexer(dmqlLexer),
	participle.CaseInsensitive("Keyword", "Ident"),
	participle.UseLookahead(4),
)

// Parse parses DMQL source into a best-effort query. It never fails: syntax
// errors are collected into the query's Errors list and parsing continues
// with the next clause.
func Parse(input string) *ast.Query {
	q, _ := ParseQuery(input)
	return q
}

// ParseQuery parses DMQL source and additionally returns the positioned
// diagnostics for pretty terminal output.
func ParseQuery(input string) (*ast.Query, *diagnostics.Diagnostics) {
	debug.Debug("parsing query", "length", len(input))

	diags := &diagnostics.Diagnostics{}
	b := newQueryBuilder(input)

	tokens := lexInput(input)
	for _, seg := range splitSegments(tokens) {
		if !seg.clause {
			tok := seg.tokens[0]
			diags.PushError(diagnostics.NewSyntaxError(
				fmt.Sprintf("unexpected input %q", tok.Value),
				position(tok.Pos)))
			continue
		}
		node, err := parseClause(seg.tokens)
		if err != nil {
			diags.PushError(syntaxErrorFrom(err))
			// A malformed WHERE still contributes a best-effort raw
			// comparison, matching the extractor's fallback contract.
			if strings.EqualFold(seg.tokens[0].Value, "WHERE") {
				b.reduceWhereFallback(seg.tokens[1:])
			}
			continue
		}
		b.reduce(node)
	}

	q := b.finalize(diags.Strings())
	debug.Debug("parsed query", "database", q.Database, "tables", len(q.Tables), "errors", len(q.Errors))
	return q, diags
}

// lexInput tokenizes the full input. The lexer's catch-all rule makes this
// total: there is no input for which tokenization aborts. Whitespace and
// comments are filtered here; Unknown tokens stay so the clause parser can
// flag them with their position.
func lexInput(input string) []lexer.Token {
	lex, err := dmqlLexer.Lex("query", strings.NewReader(input))
	if err != nil {
		return nil
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil
	}
	symbols := dmqlLexer.Symbols()
	elide := map[lexer.TokenType]bool{}
	for _, name := range elidedTypes {
		elide[symbols[name]] = true
	}
	tokens := make([]lexer.Token, 0, len(all))
	for _, tok := range all {
		if tok.EOF() || elide[tok.Type] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// segment is a run of tokens belonging to one clause. A segment with clause
// unset holds stray tokens that precede any recognizable clause keyword.
type segment struct {
	tokens []lexer.Token
	clause bool
}

// splitSegments cuts the token stream at top-level clause keywords. Clause
// keywords can not occur inside another clause (AND inside WHERE is a
// conjunction, not a boundary), so a plain keyword scan is sufficient.
func splitSegments(tokens []lexer.Token) []segment {
	keywordType := dmqlLexer.Symbols()["Keyword"]
	var segments []segment
	start := 0
	started := false
	for i, tok := range tokens {
		if tok.Type == keywordType && clauseKeywords[strings.ToUpper(tok.Value)] {
			if i > start {
				segments = append(segments, segment{tokens: tokens[start:i], clause: started})
			}
			start = i
			started = true
		}
	}
	if start < len(tokens) {
		segments = append(segments, segment{tokens: tokens[start:], clause: started})
	}
	return segments
}

// parseClause parses one segment with the clause grammar. The parse must
// consume the whole segment; trailing tokens are a syntax error.
func parseClause(tokens []lexer.Token) (*Clause, error) {
	plex, err := lexer.Upgrade(newTokenLexer(tokens))
	if err != nil {
		return nil, err
	}
	return clauseParser.ParseFromLexer(plex)
}

// syntaxErrorFrom converts a participle error into a positioned SyntaxError.
func syntaxErrorFrom(err error) diagnostics.SyntaxError {
	var perr participle.Error
	if errors.As(err, &perr) {
		return diagnostics.NewSyntaxError(perr.Message(), position(perr.Position()))
	}
	return diagnostics.NewSyntaxError(err.Error(), diagnostics.Position{Line: 1, Column: 1})
}

func position(pos lexer.Position) diagnostics.Position {
	return diagnostics.Position{Line: pos.Line, Column: pos.Column}
}

// tokenLexer replays an already-lexed token slice, preserving the original
// source positions so per-clause errors still point into the full input.
type tokenLexer struct {
	tokens []lexer.Token
	index  int
	eof    lexer.Token
}

func newTokenLexer(tokens []lexer.Token) *tokenLexer {
	eofPos := lexer.Position{Line: 1, Column: 1}
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		eofPos = last.Pos
		eofPos.Column += len(last.Value)
		eofPos.Offset += len(last.Value)
	}
	return &tokenLexer{
		tokens: tokens,
		eof:    lexer.Token{Type: lexer.EOF, Pos: eofPos},
	}
}

func (l *tokenLexer) Next() (lexer.Token, error) {
	if l.index >= len(l.tokens) {
		return l.eof, nil
	}
	tok := l.tokens[l.index]
	l.index++
	return tok, nil
}
