// Copyright 2026 Matcha Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeTextOnly(t *testing.T) {
	src := "hello, world\nno delimiters here"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Equal(t, []TokenKind{TokenText, TokenEOF}, kinds(tokens))
	assert.Equal(t, src, tokens[0].Text)
}

func TestTokenizeLiteralBraceIsText(t *testing.T) {
	src := "a { b {x notadelim } {{ id }}"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Equal(t, []TokenKind{TokenText, TokenIdentifier, TokenEOF}, kinds(tokens))
	assert.Equal(t, "a { b {x notadelim } ", tokens[0].Text)
	assert.Equal(t, "id", tokens[1].Text)
}

func TestTokenizeIdentifierAndBuilder(t *testing.T) {
	src := "{{ name }} and {[ body ]}"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Equal(t, []TokenKind{TokenIdentifier, TokenText, TokenBuilder, TokenEOF}, kinds(tokens))
	assert.Equal(t, "name", tokens[0].Text)
	assert.Equal(t, " and ", tokens[1].Text)
	assert.Equal(t, "body", tokens[2].Text)
}

func TestTokenizeIfElseEndif(t *testing.T) {
	src := "{% if is_admin %}yes{% else %}no{% endif %}"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Equal(t, []TokenKind{TokenIf, TokenText, TokenElse, TokenText, TokenEndIf, TokenEOF}, kinds(tokens))
	assert.Equal(t, "is_admin", tokens[0].Text)
}

func TestTokenizeForWithoutType(t *testing.T) {
	src := "{% for item in items %}{{ item }}{% endfor %}"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Equal(t, []TokenKind{TokenFor, TokenIdentifier, TokenEndFor, TokenEOF}, kinds(tokens))
	forTok := tokens[0]
	assert.Equal(t, "item", forTok.Name)
	assert.False(t, forTok.HasType)
	assert.Equal(t, "items", forTok.Text)
}

func TestTokenizeForWithType(t *testing.T) {
	src := "{% for row as Row in rows %}{% endfor %}"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	forTok := tokens[0]
	assert.Equal(t, TokenFor, forTok.Kind)
	assert.Equal(t, "row", forTok.Name)
	assert.True(t, forTok.HasType)
	assert.Equal(t, "Row", forTok.Type)
	assert.Equal(t, "rows", forTok.Text)
}

func TestTokenizeWithAndImport(t *testing.T) {
	src := "{> with user as User\n{> import app/types.{User}\nhi"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Equal(t, []TokenKind{TokenWith, TokenImport, TokenText, TokenEOF}, kinds(tokens))
	assert.Equal(t, "user", tokens[0].Name)
	assert.Equal(t, "User", tokens[0].Type)
	assert.Equal(t, "app/types.{User}", tokens[1].Text)
	assert.Equal(t, "hi", tokens[2].Text)
}

func TestTokenizeFnDefPrivateAndPublic(t *testing.T) {
	src := "{> fn greet(name: String)\nhi\n{> endfn\n{> pub fn shout(name: String)\nHI\n{> endfn\n"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Equal(t, []TokenKind{
		TokenFnStart, TokenText, TokenFnEnd,
		TokenFnStart, TokenText, TokenFnEnd,
		TokenEOF,
	}, kinds(tokens))

	assert.Equal(t, Private, tokens[0].Visibility)
	assert.Equal(t, "greet", tokens[0].Name)
	assert.Equal(t, "name: String", tokens[0].Params)

	assert.Equal(t, Public, tokens[3].Visibility)
	assert.Equal(t, "shout", tokens[3].Name)
	assert.Equal(t, "name: String", tokens[3].Params)
}

func TestTokenizeDeclarationConsumesTrailingNewline(t *testing.T) {
	src := "{> with x as Int\nafter"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "after", tokens[1].Text)
	assert.Equal(t, 2, tokens[1].Span.Start.Line)
}

func TestTokenizeDeclarationAtEOFWithoutNewline(t *testing.T) {
	src := "{> endfn"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Equal(t, []TokenKind{TokenFnEnd, TokenEOF}, kinds(tokens))
}

func TestTokenizeUnterminatedDelimiterErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		kind DelimiterKind
	}{
		{"identifier", "{{ name", DelimiterIdentifier},
		{"builder", "{[ tree", DelimiterBuilder},
		{"control", "{% if cond", DelimiterControl},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Tokenize(tc.src)
			require.Error(t, err)
			var unterminated *UnterminatedDelimiterError
			require.ErrorAs(t, err, &unterminated)
			assert.Equal(t, tc.kind, unterminated.Kind)
		})
	}
}

func TestTokenizeUnknownKeyword(t *testing.T) {
	_, err := Tokenize("{% wat cond %}")
	require.Error(t, err)
	var unknown *UnknownKeywordError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "wat", unknown.Got)
}

func TestTokenizeMalformedDirective(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"if without condition", "{% if %}"},
		{"for without in", "{% for item items %}"},
		{"with without as", "{> with user User\n"},
		{"fn without parens", "{> fn greet\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Tokenize(tc.src)
			require.Error(t, err)
			var malformed *MalformedDirectiveError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestTokenizePositionsAreMonotonicAndGapless(t *testing.T) {
	src := "a\n{{ b }}{% if c %}d{% endif %}{> import e\nf"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	for i := 1; i < len(tokens); i++ {
		prevEnd := tokens[i-1].Span.End
		curStart := tokens[i].Span.Start
		assert.Equal(t, prevEnd, curStart, "token %d does not start where token %d ended", i, i-1)
	}
}
