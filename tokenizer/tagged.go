package tokenizer

import (
	"text2phenotype.com/postag/types"
	"fmt"
	"strings"
	"unicode"
)

type MalformedTokenError struct {
	Token string
	Index int
}

func (err MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed token %q at position %d: expected word%stag", err.Token, err.Index, types.TagSeparator)
}

// separatorIndex finds the first '/' not escaped with a backslash.
func separatorIndex(raw string) int {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '/' && (i == 0 || raw[i-1] != '\\') {
			return i
		}
	}
	return -1
}

// ParseTagged splits a word/TAG token. Only the first of alternate tags
// (TAG|ALT) is authoritative; the rest land in Alternates. Escaped slashes
// stay in the word as they are.
func ParseTagged(raw string) (types.Token, bool) {
	idx := separatorIndex(raw)
	if idx < 0 || idx == len(raw)-1 {
		return types.Token{}, false
	}
	token := types.Token{
		Word:     raw[:idx],
		IsMarker: IsBracketMarker(raw),
	}
	tags := strings.Split(raw[idx+1:], types.AlternateSeparator)
	token.Tag = tags[0]
	if len(tags) > 1 {
		token.Alternates = tags[1:]
	}
	if len(token.Tag) == 0 {
		return types.Token{}, false
	}
	token.IsPunct = IsSentenceFinal(token.Word)
	return token, true
}

// TaggedTokens parses a whole tagged document, skipping bracket markers.
// Index in MalformedTokenError counts whitespace separated fields from zero.
func TaggedTokens(text string) ([]types.Token, error) {
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	tokens := make([]types.Token, 0, len(fields))
	for i, field := range fields {
		if IsBracketMarker(field) {
			continue
		}
		token, isOk := ParseTagged(field)
		if !isOk {
			return nil, MalformedTokenError{Token: field, Index: i}
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
