package tokenizer

import (
	"text2phenotype.com/postag/types"
	"unicode"
	"unicode/utf8"
)

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// IsBracketMarker reports tokens opening or closing a bracketed group. They are
// structural annotations, not words.
func IsBracketMarker(token string) bool {
	return len(token) > 0 && (token[0] == '[' || token[0] == ']')
}

// IsSentenceFinal reports words that reset the tag context: anything starting
// with '.', '!' or '?'.
func IsSentenceFinal(word string) bool {
	return len(word) > 0 && isTerminator(rune(word[0]))
}

// isBoundary checks the terminator at text[offset:offset+size]. The rune
// before must not be a word rune or '.', the rune after must not be a digit
// or '.'. This keeps decimals, abbreviations and ellipses inside a sentence.
func isBoundary(text string, offset int, size int) bool {
	if offset > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:offset])
		if prev == '.' || isWordRune(prev) {
			return false
		}
	}
	if offset+size < len(text) {
		next, _ := utf8.DecodeRuneInString(text[offset+size:])
		if next == '.' || unicode.IsDigit(next) {
			return false
		}
	}
	return true
}

// SplitSentences breaks raw text into sentences and every sentence into
// whitespace separated tokens. Text after the last terminator forms a final
// sentence of its own.
func SplitSentences(text string) []types.Sentence {
	var sentences []types.Sentence
	start := 0
	for offset, r := range text {
		if !isTerminator(r) {
			continue
		}
		size := utf8.RuneLen(r)
		if !isBoundary(text, offset, size) {
			continue
		}
		end := offset + size
		if sent, isOk := newSentence(text, start, end); isOk {
			sentences = append(sentences, sent)
		}
		start = end
	}
	if sent, isOk := newSentence(text, start, len(text)); isOk {
		sentences = append(sentences, sent)
	}
	return sentences
}

func newSentence(text string, begin int, end int) (types.Sentence, bool) {
	tokens := Tokenize(text[begin:end], begin)
	if len(tokens) == 0 {
		return types.Sentence{}, false
	}
	return types.Sentence{
		Span: types.Span{
			Begin: tokens[0].Begin,
			End:   tokens[len(tokens)-1].End,
		},
		Tokens: tokens,
	}, true
}

// Tokenize splits text on whitespace. Spans are shifted by base so they point
// into the enclosing document.
func Tokenize(text string, base int) []*types.Token {
	var tokens []*types.Token
	begin := -1
	for offset, r := range text {
		if unicode.IsSpace(r) {
			if begin >= 0 {
				tokens = append(tokens, newToken(text[begin:offset], base+begin, base+offset))
				begin = -1
			}
			continue
		}
		if begin < 0 {
			begin = offset
		}
	}
	if begin >= 0 {
		tokens = append(tokens, newToken(text[begin:], base+begin, base+len(text)))
	}
	return tokens
}

func newToken(word string, begin int, end int) *types.Token {
	return &types.Token{
		Span: types.Span{
			Begin: int32(begin),
			End:   int32(end),
		},
		Word:     word,
		IsMarker: IsBracketMarker(word),
		IsPunct:  IsSentenceFinal(word),
	}
}
