package pos

import "text2phenotype.com/postag/types"

type Mode int

const (
	// ArgMax reconstructs the path from the best scoring tag of the last word.
	ArgMax Mode = iota
	// PunctuationAnchor always reconstructs from the anchor tag of the last
	// word and fails when the last word can't carry it.
	PunctuationAnchor
)

type ViterbiOptions struct {
	Mode      Mode
	AnchorTag string
	// LogSpace sums log probabilities instead of multiplying them. Long
	// sentences no longer underflow to zero, but exact ties may be lost.
	LogSpace bool
}

// transitionOrFallback is p(tag|previous) or, for a pair never seen in
// training, 1/TagFrequency(previous).
func transitionOrFallback(model Model, tag string, previous string) (float64, error) {
	if p, isOk := model.Transition(tag, previous); isOk {
		return p, nil
	}
	freq := model.TagFrequency(previous)
	if freq == 0 {
		return 0, DivisionByZeroError{Tag: previous}
	}
	return 1 / float64(freq), nil
}

func candidatesFor(model Model, unknown *UnknownWords, word string) ([]candidate, error) {
	tags := model.Candidates(word)
	if len(tags) == 0 {
		tag, p, err := unknown.LookupOrInsertDefault(word)
		if err != nil {
			return nil, err
		}
		return []candidate{{tag: tag, emission: p}}, nil
	}
	res := make([]candidate, len(tags))
	for i, tag := range tags {
		p, _ := model.Emission(word, tag)
		res[i] = candidate{tag: tag, emission: p}
	}
	return res, nil
}

// buildLattice fills the Viterbi lattice column by column. Previous cells are
// compared with strict greater-than, so on ties the first previous tag in
// candidate order wins. Each cell starts at the floor score pointing at the
// first previous cell, which it keeps when every path underflows.
func buildLattice(model Model, unknown *UnknownWords, words []string, sc scoring) (lattice, error) {
	l := make(lattice, len(words))
	for pos, word := range words {
		candidates, err := candidatesFor(model, unknown, word)
		if err != nil {
			return nil, err
		}

		column := make([]cell, len(candidates))
		for i, cand := range candidates {
			emission := sc.weight(cand.emission)
			if pos == 0 {
				trans, err := transitionOrFallback(model, cand.tag, StartTag)
				if err != nil {
					return nil, err
				}
				column[i] = cell{tag: cand.tag, score: sc.start(sc.weight(trans), emission), back: -1}
				continue
			}

			best := cell{tag: cand.tag, score: sc.floor(), back: 0}
			for j, prev := range l[pos-1] {
				trans, err := transitionOrFallback(model, cand.tag, prev.tag)
				if err != nil {
					return nil, err
				}
				score := sc.extend(prev.score, sc.weight(trans), emission)
				if score > best.score {
					best.score = score
					best.back = j
				}
			}
			column[i] = best
		}
		l[pos] = column
	}
	return l, nil
}

// NewViterbiTagger decodes the most probable tag sequence of a sentence under
// a first order Markov model over tags. Unknown words are resolved through
// the shared cache.
func NewViterbiTagger(model Model, unknown *UnknownWords, opts ViterbiOptions) Tagger {
	return func(words []string) ([]types.Token, error) {
		if len(words) == 0 {
			return []types.Token{}, nil
		}

		l, err := buildLattice(model, unknown, words, scoring{logSpace: opts.LogSpace})
		if err != nil {
			return nil, err
		}

		var idx int
		switch opts.Mode {
		case PunctuationAnchor:
			idx = l.indexOf(opts.AnchorTag)
			if idx < 0 {
				last := len(words) - 1
				return nil, PathReconstructionError{
					Anchor:     opts.AnchorTag,
					Word:       words[last],
					Position:   last,
					Candidates: l.tags(last),
				}
			}
		default:
			idx = l.bestIndex()
		}

		return zipTokens(words, l.path(idx)), nil
	}
}
