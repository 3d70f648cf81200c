package main

import (
	"text2phenotype.com/postag/logger"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/kelseyhightower/envconfig"
	"os"
)

type Config struct {
	ConfigPath string `envconfig:"POSTAG_CONFIG_PATH" default:""`
	UnknownTag string `envconfig:"POSTAG_UNKNOWN_TAG" default:""`
	APIPort    string `envconfig:"POSTAG_API_PORT" default:"10000"`
}

func newRootCommand(config Config) *commander.Command {
	return &commander.Command{
		UsageLine: "postag <command> [flags] [args]",
		Short:     "trains a part-of-speech tagger and scores tagged text",
		Subcommands: []*commander.Command{
			TagCmd(config),
			ScoreCmd(),
			ServeCmd(config),
		},
		Flag: *flag.NewFlagSet("postag", flag.ExitOnError),
	}
}

func main() {
	logger.SetupLogging()
	mainLogger := logger.NewLogger("Main")

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		mainLogger.Error().Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	if err := newRootCommand(config).Dispatch(os.Args[1:]); err != nil {
		mainLogger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
