package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/source"
	"github.com/merkispavel/colang/internal/tokens"
)

type regexHandler func(lex *Lexer, regex *regexp.Regexp)

type regexPattern struct {
	regex   *regexp.Regexp
	handler regexHandler
}

// Lexer converts a source buffer into a token stream. It is total over
// any input: unknown characters are reported and skipped, and the stream
// always ends with an EOF token.
type Lexer struct {
	diagnostics *diagnostics.Bag
	Tokens      []tokens.Token
	file        *source.File
	pos         source.Position
	index       int
	patterns    []regexPattern
}

func New(file *source.File, diag *diagnostics.Bag) *Lexer {
	lex := &Lexer{
		file:        file,
		diagnostics: diag,
		Tokens:      make([]tokens.Token, 0),
		pos:         source.Position{Line: 0, Column: 0},

		patterns: []regexPattern{
			{regexp.MustCompile(`\s+`), skipHandler},                          // whitespace
			{regexp.MustCompile(`\/\/.*`), skipHandler},                       // single line comments
			{regexp.MustCompile(`\/\*[\s\S]*?\*\/`), skipHandler},             // multi line comments
			{regexp.MustCompile(`"[^"\n]*"`), stringHandler},                  // string literals
			{regexp.MustCompile(`"[^"\n]*`), unterminatedStringHandler},       // unterminated string
			{regexp.MustCompile(`[0-9]+\.[0-9]+`), floatHandler},              // floats before integers
			{regexp.MustCompile(`[0-9]+`), intHandler},                        // integers
			{regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`), identifierHandler}, // identifiers and keywords
			{regexp.MustCompile(`\+\+`), defaultHandler(tokens.PLUS_PLUS_TOKEN)},
			{regexp.MustCompile(`&&`), defaultHandler(tokens.AND_TOKEN)},
			{regexp.MustCompile(`\|\|`), defaultHandler(tokens.OR_TOKEN)},
			{regexp.MustCompile(`!=`), defaultHandler(tokens.NOT_EQUAL_TOKEN)},
			{regexp.MustCompile(`==`), defaultHandler(tokens.DOUBLE_EQUAL_TOKEN)},
			{regexp.MustCompile(`<=`), defaultHandler(tokens.LESS_EQUAL_TOKEN)},
			{regexp.MustCompile(`>=`), defaultHandler(tokens.GREATER_EQUAL_TOKEN)},
			{regexp.MustCompile(`<`), defaultHandler(tokens.LESS_TOKEN)},
			{regexp.MustCompile(`>`), defaultHandler(tokens.GREATER_TOKEN)},
			{regexp.MustCompile(`!`), defaultHandler(tokens.NOT_TOKEN)},
			{regexp.MustCompile(`\+`), defaultHandler(tokens.PLUS_TOKEN)},
			{regexp.MustCompile(`\-`), defaultHandler(tokens.MINUS_TOKEN)},
			{regexp.MustCompile(`\*`), defaultHandler(tokens.MUL_TOKEN)},
			{regexp.MustCompile(`/`), defaultHandler(tokens.DIV_TOKEN)},
			{regexp.MustCompile(`%`), defaultHandler(tokens.MOD_TOKEN)},
			{regexp.MustCompile(`=`), defaultHandler(tokens.EQUALS_TOKEN)},
			{regexp.MustCompile(`\(`), defaultHandler(tokens.OPEN_PAREN)},
			{regexp.MustCompile(`\)`), defaultHandler(tokens.CLOSE_PAREN)},
			{regexp.MustCompile(`\{`), defaultHandler(tokens.OPEN_CURLY)},
			{regexp.MustCompile(`\}`), defaultHandler(tokens.CLOSE_CURLY)},
			{regexp.MustCompile(`,`), defaultHandler(tokens.COMMA_TOKEN)},
			{regexp.MustCompile(`\.`), defaultHandler(tokens.DOT_TOKEN)},
			{regexp.MustCompile(`;`), defaultHandler(tokens.SEMICOLON_TOKEN)},
		},
	}
	return lex
}

func (lex *Lexer) advance(match string) {
	for _, ch := range match {
		if ch == '\n' {
			lex.pos.Line++
			lex.pos.Column = 0
		} else {
			lex.pos.Column++
		}
	}
	lex.index += len(match)
}

func (lex *Lexer) push(token tokens.Token) {
	lex.Tokens = append(lex.Tokens, token)
}

func (lex *Lexer) remainder() string {
	return lex.file.Content[lex.index:]
}

func (lex *Lexer) atEOF() bool {
	return lex.index >= len(lex.file.Content)
}

// span builds the source span from start up to the current position.
func (lex *Lexer) span(start source.Position) *source.Span {
	return source.NewSpan(lex.file, start, lex.pos)
}

func defaultHandler(token tokens.TOKEN) regexHandler {
	return func(lex *Lexer, _ *regexp.Regexp) {
		start := lex.pos
		lex.advance(string(token))
		lex.push(tokens.NewToken(token, string(token), lex.span(start)))
	}
}

func identifierHandler(lex *Lexer, regex *regexp.Regexp) {
	identifier := regex.FindString(lex.remainder())
	start := lex.pos
	lex.advance(identifier)
	if tokens.IsKeyword(identifier) {
		lex.push(tokens.NewToken(tokens.TOKEN(identifier), identifier, lex.span(start)))
	} else {
		lex.push(tokens.NewToken(tokens.IDENTIFIER_TOKEN, identifier, lex.span(start)))
	}
}

func intHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	start := lex.pos
	lex.advance(match)
	lex.push(tokens.NewToken(tokens.INT_TOKEN, match, lex.span(start)))
}

func floatHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	start := lex.pos
	lex.advance(match)
	lex.push(tokens.NewToken(tokens.FLOAT_TOKEN, match, lex.span(start)))
}

func stringHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	// exclude the quotes
	stringLiteral := match[1 : len(match)-1]
	start := lex.pos
	lex.advance(match)
	lex.push(tokens.NewToken(tokens.STRING_TOKEN, stringLiteral, lex.span(start)))
}

func unterminatedStringHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	start := lex.pos
	lex.advance(match)
	lex.diagnostics.Add(
		diagnostics.NewError(lex.span(start), "unterminated string literal").
			WithCode(diagnostics.ErrUnterminatedString),
	)
	// keep the partial value so the parser can continue
	lex.push(tokens.NewToken(tokens.STRING_TOKEN, strings.TrimPrefix(match, `"`), lex.span(start)))
}

// skipHandler processes a token that should be skipped by the lexer.
func skipHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	lex.advance(match)
}

// Tokenize scans the whole source buffer into tokens. Lexing never
// aborts; bad characters are reported and skipped.
func (lex *Lexer) Tokenize() []tokens.Token {
	for !lex.atEOF() {
		matched := false

		for _, pattern := range lex.patterns {
			loc := pattern.regex.FindStringIndex(lex.remainder())
			if loc != nil && loc[0] == 0 {
				pattern.handler(lex, pattern.regex)
				matched = true
				break
			}
		}

		if !matched {
			tok := lex.remainder()[0]
			start := lex.pos
			lex.advance(string(rune(tok)))
			lex.diagnostics.Add(
				diagnostics.NewError(lex.span(start), fmt.Sprintf("unrecognized character '%c'", tok)).
					WithCode(diagnostics.ErrUnexpectedCharacter),
			)
		}
	}

	// EOF token with a zero-width span one past the last character
	end := lex.file.EndPos()
	lex.push(tokens.NewToken(tokens.EOF_TOKEN, "end of file", source.NewSpan(lex.file, end, end)))

	return lex.Tokens
}
