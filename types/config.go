package types

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"path"
	"strings"
)

const (
	// decoder modes
	DecoderArgMax = "argmax"
	DecoderAnchor = "anchor"

	DefaultUnknownTag = "NN"
	DefaultAnchorTag  = "."
)

// OverrideRule forces one of Prefer when the previously assigned tag is Previous.
type OverrideRule struct {
	Previous string   `yaml:"previous" json:"previous"`
	Prefer   []string `yaml:"prefer" json:"prefer"`
}

func (rule OverrideRule) Matches(previous string, candidate string) bool {
	if rule.Previous != previous {
		return false
	}
	for _, tag := range rule.Prefer {
		if tag == candidate {
			return true
		}
	}
	return false
}

// SwapRule replaces a chosen From tag with To when word/To was seen in training.
type SwapRule struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

type Configuration struct {
	Name       string         `yaml:"-" json:"name"`
	FilePath   string         `yaml:"-" json:"file_path"`
	UnknownTag string         `yaml:"unknown_tag" json:"unknown_tag"`
	Decoder    string         `yaml:"decoder" json:"decoder"`
	AnchorTag  string         `yaml:"anchor_tag" json:"anchor_tag"`
	LogSpace   bool           `yaml:"log_space" json:"log_space"`
	Rules      []OverrideRule `yaml:"rules" json:"rules"`
	Swaps      []SwapRule     `yaml:"swaps" json:"swaps"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Name:       "default",
		UnknownTag: DefaultUnknownTag,
		Decoder:    DecoderArgMax,
		AnchorTag:  DefaultAnchorTag,
		Rules: []OverrideRule{
			{Previous: "PRP", Prefer: []string{"VBD"}},
			{Previous: "TO", Prefer: []string{"VB"}},
			{Previous: "POS", Prefer: []string{"NN", "NNS"}},
		},
		Swaps: []SwapRule{
			{From: "WDT", To: "IN"},
		},
	}
}

func (cfg Configuration) Validate() error {
	if len(cfg.UnknownTag) == 0 {
		return fmt.Errorf("configuration %q: unknown_tag is empty", cfg.Name)
	}
	if cfg.UnknownTag == StartTag {
		return fmt.Errorf("configuration %q: unknown_tag can't be %s", cfg.Name, StartTag)
	}
	switch cfg.Decoder {
	case DecoderArgMax:
	case DecoderAnchor:
		if len(cfg.AnchorTag) == 0 {
			return fmt.Errorf("configuration %q: anchor decoder requires anchor_tag", cfg.Name)
		}
	default:
		return fmt.Errorf("configuration %q: wrong decoder %q", cfg.Name, cfg.Decoder)
	}
	for _, swap := range cfg.Swaps {
		if len(swap.From) == 0 || len(swap.To) == 0 {
			return fmt.Errorf("configuration %q: swap rule needs both tags", cfg.Name)
		}
	}
	return nil
}

// ParseConfiguration overlays YAML content on the default configuration.
func ParseConfiguration(buf []byte) (Configuration, error) {
	cfg := DefaultConfiguration()
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func LoadConfiguration(filePath string) (Configuration, error) {
	buf, err := ioutil.ReadFile(filePath)
	if err != nil {
		return Configuration{}, err
	}
	cfg, err := ParseConfiguration(buf)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", filePath, err)
	}
	cfg.FilePath = filePath
	cfg.Name = strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	return cfg, nil
}
