package main

import (
	"text2phenotype.com/postag/pipeline"
	"text2phenotype.com/postag/pos"
	"text2phenotype.com/postag/source"
	"text2phenotype.com/postag/types"
	"fmt"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"io"
	"os"
)

type tagOptions struct {
	baseline   bool
	rules      bool
	anchor     bool
	configPath string
}

func (opts tagOptions) policy() pos.Policy {
	return pos.SelectPolicy(opts.baseline, opts.rules)
}

func addTagFlags(fs *flag.FlagSet, opts *tagOptions) {
	fs.BoolVar(&opts.baseline, "baseline", false, "use the most-likely-tag baseline (overrides -rules)")
	fs.BoolVar(&opts.rules, "rules", false, "use the rule-based tagger")
	fs.BoolVar(&opts.anchor, "anchor", false, "reconstruct Viterbi paths from the sentence-final punctuation tag")
	fs.StringVar(&opts.configPath, "config", "", "YAML tagger configuration (overrides POSTAG_CONFIG_PATH)")
}

// loadConfiguration resolves the tagger configuration: YAML file from the
// flag or the environment, then environment and flag overrides.
func loadConfiguration(config Config, opts tagOptions) (types.Configuration, error) {
	cfg := types.DefaultConfiguration()
	configPath := opts.configPath
	if len(configPath) == 0 {
		configPath = config.ConfigPath
	}
	if len(configPath) > 0 {
		var err error
		if cfg, err = types.LoadConfiguration(configPath); err != nil {
			return cfg, err
		}
	}
	if len(config.UnknownTag) > 0 {
		cfg.UnknownTag = config.UnknownTag
	}
	if opts.anchor {
		cfg.Decoder = types.DecoderAnchor
	}
	return cfg, cfg.Validate()
}

func newPipeline(loader *source.Loader, config Config, opts tagOptions, trainPath string) (*pipeline.Pipeline, error) {
	cfg, err := loadConfiguration(config, opts)
	if err != nil {
		return nil, err
	}
	trainText, err := loader.Read(trainPath)
	if err != nil {
		return nil, err
	}
	return pipeline.New(pipeline.Params{
		TrainText: trainText,
		Policy:    opts.policy(),
		Config:    cfg,
	})
}

func runTag(w io.Writer, loader *source.Loader, config Config, opts tagOptions, trainPath string, testPath string) error {
	ppln, err := newPipeline(loader, config, opts, trainPath)
	if err != nil {
		return err
	}
	testText, err := loader.Read(testPath)
	if err != nil {
		return err
	}
	return ppln.Write(w, pipeline.Request{Text: testText, Tid: testPath})
}

func TagCmd(config Config) *commander.Command {
	var opts tagOptions
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: %s", cmd.UsageLine)
			}
			return runTag(os.Stdout, source.NewLoader(), config, opts, args[0], args[1])
		},
		UsageLine: "tag [-baseline] [-rules] [-anchor] [-config file] <train> <test>",
		Short:     "tags a test file using a model trained on a tagged training file",
		Long: `
tag trains frequency tables on <train>, a file of word/TAG tokens, and prints
every sentence of <test> tagged, one per line. Paths may be s3://bucket/key.

ex:
 $ postag tag pos-train.txt pos-test.txt > pos-test-with-tags.txt
`,
		Flag: *flag.NewFlagSet("tag", flag.ExitOnError),
	}
	addTagFlags(&cmd.Flag, &opts)
	return cmd
}
