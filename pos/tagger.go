package pos

import (
	"text2phenotype.com/postag/types"
	"fmt"
)

// Tagger tags one sentence given as words, bracket markers already removed.
type Tagger func(words []string) ([]types.Token, error)

type Policy string

const (
	PolicyViterbi  Policy = "viterbi"
	PolicyBaseline Policy = "baseline"
	PolicyRules    Policy = "rules"
)

// SelectPolicy maps command line switches to a policy. Baseline wins over rules.
func SelectPolicy(baseline bool, rules bool) Policy {
	switch {
	case baseline:
		return PolicyBaseline
	case rules:
		return PolicyRules
	}
	return PolicyViterbi
}

func ModeFromConfig(cfg types.Configuration) (Mode, error) {
	switch cfg.Decoder {
	case types.DecoderArgMax, "":
		return ArgMax, nil
	case types.DecoderAnchor:
		return PunctuationAnchor, nil
	}
	return ArgMax, fmt.Errorf("wrong decoder %q", cfg.Decoder)
}

func NewTagger(policy Policy, model Model, unknown *UnknownWords, cfg types.Configuration) (Tagger, error) {
	switch policy {
	case PolicyBaseline:
		return NewBaselineTagger(model, cfg.UnknownTag), nil
	case PolicyRules:
		return NewRuleTagger(model, cfg), nil
	case PolicyViterbi:
		mode, err := ModeFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		return NewViterbiTagger(model, unknown, ViterbiOptions{
			Mode:      mode,
			AnchorTag: cfg.AnchorTag,
			LogSpace:  cfg.LogSpace,
		}), nil
	}
	return nil, fmt.Errorf("unknown tagging policy %q", policy)
}

func zipTokens(words []string, tags []string) []types.Token {
	tokens := make([]types.Token, len(words))
	for i, word := range words {
		tokens[i] = types.Token{Word: word, Tag: tags[i]}
	}
	return tokens
}
