package pos

import (
	"text2phenotype.com/postag/logger"
	"text2phenotype.com/postag/tokenizer"
	"text2phenotype.com/postag/types"
	"text2phenotype.com/postag/utils"
	"fmt"
)

const StartTag = types.StartTag

var posLogger = logger.NewLogger("POS")

// Model is the read-only view of trained tables shared by every tagging policy.
type Model interface {
	// Emission is p(word|tag).
	Emission(word string, tag string) (float64, bool)
	// Transition is p(tag|previous), keyed the way it was counted: by the
	// current tag over its previous tags.
	Transition(tag string, previous string) (float64, bool)
	TagFrequency(tag string) int
	// Candidates lists tags observed with word, in first seen order. The
	// slice must not be modified.
	Candidates(word string) []string
}

// Tables holds the relative frequency tables built from one training corpus.
type Tables struct {
	emission    map[string]map[string]float64
	transition  map[string]map[string]float64
	tagFreq     map[string]int
	wordTags    map[string][]string
	tags        []string
	Tokens      int
	Fingerprint string
}

func newTables() *Tables {
	return &Tables{
		emission:   make(map[string]map[string]float64),
		transition: make(map[string]map[string]float64),
		tagFreq:    map[string]int{StartTag: 0},
		wordTags:   make(map[string][]string),
		tags:       []string{StartTag},
	}
}

func (tables *Tables) Emission(word string, tag string) (float64, bool) {
	p, isOk := tables.emission[word][tag]
	return p, isOk
}

func (tables *Tables) Transition(tag string, previous string) (float64, bool) {
	p, isOk := tables.transition[tag][previous]
	return p, isOk
}

func (tables *Tables) TagFrequency(tag string) int {
	return tables.tagFreq[tag]
}

func (tables *Tables) Candidates(word string) []string {
	return tables.wordTags[word]
}

func (tables *Tables) Tags() []string {
	tags := make([]string, len(tables.tags))
	copy(tags, tables.tags)
	return tags
}

// Sentences is the number of sentence starts seen in training.
func (tables *Tables) Sentences() int {
	return tables.tagFreq[StartTag]
}

func (tables *Tables) countTag(tag string) {
	if _, isOk := tables.tagFreq[tag]; !isOk {
		tables.tags = append(tables.tags, tag)
	}
	tables.tagFreq[tag]++
}

func (tables *Tables) countWord(word string, tag string) {
	tags, isOk := tables.emission[word]
	if !isOk {
		tags = make(map[string]float64)
		tables.emission[word] = tags
	}
	if _, isOk := tags[tag]; !isOk {
		tables.wordTags[word] = append(tables.wordTags[word], tag)
	}
	tags[tag]++
}

func (tables *Tables) countTransition(tag string, previous string) {
	prevs, isOk := tables.transition[tag]
	if !isOk {
		prevs = make(map[string]float64)
		tables.transition[tag] = prevs
	}
	prevs[previous]++
}

// normalize turns counts into relative frequencies, dividing by the
// frequency of the tag being emitted or transitioned into.
func (tables *Tables) normalize() error {
	for _, tags := range tables.emission {
		for tag, cnt := range tags {
			freq := tables.tagFreq[tag]
			if freq == 0 {
				return DivisionByZeroError{Tag: tag}
			}
			tags[tag] = cnt / float64(freq)
		}
	}
	for tag, prevs := range tables.transition {
		freq := tables.tagFreq[tag]
		if freq == 0 {
			return DivisionByZeroError{Tag: tag}
		}
		for prev, cnt := range prevs {
			prevs[prev] = cnt / float64(freq)
		}
	}
	return nil
}

// Train builds the tables from word/TAG text. The tag context resets to the
// start tag after every word beginning with '.', '!' or '?'.
func Train(text string) (*Tables, error) {
	tokens, err := tokenizer.TaggedTokens(text)
	if err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}

	tables := newTables()
	previous := StartTag
	for _, token := range tokens {
		tables.countTag(token.Tag)
		tables.countWord(token.Word, token.Tag)
		tables.countTransition(token.Tag, previous)
		if previous == StartTag {
			tables.tagFreq[StartTag]++
		}

		if token.IsPunct {
			previous = StartTag
		} else {
			previous = token.Tag
		}
	}

	if err := tables.normalize(); err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}
	tables.Tokens = len(tokens)
	tables.Fingerprint = utils.Fingerprint(utils.HashString(text))

	posLogger.Debug().
		Str("fingerprint", tables.Fingerprint).
		Int("tokens", tables.Tokens).
		Int("words", len(tables.emission)).
		Int("tags", len(tables.tags)-1).
		Int("sentences", tables.Sentences()).
		Msg("Frequency tables built")
	return tables, nil
}
