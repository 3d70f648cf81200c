package main

import (
	"text2phenotype.com/postag/eval"
	"text2phenotype.com/postag/source"
	"fmt"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"io"
	"os"
)

func runScore(w io.Writer, loader *source.Loader, asJSON bool, testPath string, keyPath string) error {
	test, err := loader.Read(testPath)
	if err != nil {
		return err
	}
	key, err := loader.Read(keyPath)
	if err != nil {
		return err
	}
	report, err := eval.Score(test, key)
	if err != nil {
		return err
	}
	if asJSON {
		return report.WriteJSON(w)
	}
	return report.WriteText(w)
}

func ScoreCmd() *commander.Command {
	var asJSON bool
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: %s", cmd.UsageLine)
			}
			return runScore(os.Stdout, source.NewLoader(), asJSON, args[0], args[1])
		},
		UsageLine: "score [-json] <test> <key>",
		Short:     "scores a tagged file against a key file",
		Long: `
score prints the accuracy of <test> against <key> followed by one confusion
line per key tag: the predicted tags seen for it and their counts.

ex:
 $ postag score pos-test-with-tags.txt pos-test-key.txt
`,
		Flag: *flag.NewFlagSet("score", flag.ExitOnError),
	}
	cmd.Flag.BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
