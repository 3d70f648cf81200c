package types

import "strings"

type Sentence struct {
	Span
	Tokens []*Token
}

// Words returns the word forms of the sentence, bracket markers excluded.
func (sent Sentence) Words() []string {
	words := make([]string, 0, len(sent.Tokens))
	for _, token := range sent.Tokens {
		if token.IsMarker {
			continue
		}
		words = append(words, token.Word)
	}
	return words
}

func (sent Sentence) IsEmpty() bool {
	for _, token := range sent.Tokens {
		if !token.IsMarker {
			return false
		}
	}
	return true
}

// JoinTokens renders tokens in word/TAG form separated by single spaces.
func JoinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, token := range tokens {
		parts[i] = token.String()
	}
	return strings.Join(parts, " ")
}
