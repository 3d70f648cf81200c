package types

// Span is a byte range into the source text.
type Span struct {
	Begin int32
	End   int32
}
