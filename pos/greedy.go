package pos

import "text2phenotype.com/postag/types"

// mostLikely picks the observed tag with the highest emission. An empty
// result means the word was never seen.
func mostLikely(model Model, word string, override func(tag string) bool) string {
	score := 0.0
	best := ""
	for _, tag := range model.Candidates(word) {
		if override != nil && override(tag) {
			score = 1
			best = tag
			continue
		}
		p, _ := model.Emission(word, tag)
		if p > score {
			score = p
			best = tag
		}
	}
	return best
}

// NewBaselineTagger assigns every word its single most frequent tag.
func NewBaselineTagger(model Model, unknownTag string) Tagger {
	return func(words []string) ([]types.Token, error) {
		tags := make([]string, len(words))
		for i, word := range words {
			tags[i] = mostLikely(model, word, nil)
			if len(tags[i]) == 0 {
				tags[i] = unknownTag
			}
		}
		return zipTokens(words, tags), nil
	}
}

// NewRuleTagger works like the baseline, except candidates named by an
// override rule for the previously assigned tag win outright. Swap rules run
// on the chosen tag afterwards; the first matching one applies.
func NewRuleTagger(model Model, cfg types.Configuration) Tagger {
	return func(words []string) ([]types.Token, error) {
		tags := make([]string, len(words))
		previous := StartTag
		for i, word := range words {
			override := func(tag string) bool {
				for _, rule := range cfg.Rules {
					if rule.Matches(previous, tag) {
						return true
					}
				}
				return false
			}

			tag := mostLikely(model, word, override)
			if len(tag) == 0 {
				tag = cfg.UnknownTag
			}
			for _, swap := range cfg.Swaps {
				if tag != swap.From {
					continue
				}
				if _, isOk := model.Emission(word, swap.To); isOk {
					tag = swap.To
				}
				break
			}

			tags[i] = tag
			previous = tag
		}
		return zipTokens(words, tags), nil
	}
}
