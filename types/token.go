package types

import "strings"

const (
	// StartTag is the context of the first word in every sentence. It never
	// appears as a real tag.
	StartTag = "<start>"

	TagSeparator       = "/"
	AlternateSeparator = "|"
)

type Token struct {
	Span
	Word       string
	Tag        string
	Alternates []string
	IsMarker   bool
	IsPunct    bool
}

func (token Token) IsTagged() bool {
	return len(token.Tag) > 0
}

// String renders the token in the word/TAG format. Markers and untagged
// tokens render as the bare word.
func (token Token) String() string {
	if token.IsMarker || !token.IsTagged() {
		return token.Word
	}
	var sb strings.Builder
	sb.Grow(len(token.Word) + len(token.Tag) + 1)
	sb.WriteString(token.Word)
	sb.WriteString(TagSeparator)
	sb.WriteString(token.Tag)
	return sb.String()
}
