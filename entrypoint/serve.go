package main

import (
	"text2phenotype.com/postag/api"
	"text2phenotype.com/postag/logger"
	"text2phenotype.com/postag/redis"
	"text2phenotype.com/postag/source"
	"fmt"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"net/http"
)

func newAPIRequest(config Config, opts tagOptions, trainPath string) (*api.Request, func(), error) {
	ppln, err := newPipeline(source.NewLoader(), config, opts, trainPath)
	if err != nil {
		return nil, nil, err
	}
	apiRequest := &api.Request{Pipeline: ppln}
	closeFn := func() {}

	redisConfig, err := redis.ReadEnvironment()
	if err != nil {
		return nil, nil, err
	}
	if redisConfig.Enabled() {
		client := redis.NewClient(redisConfig)
		apiRequest.Cache = client
		closeFn = func() { _ = client.Close() }
	}
	return apiRequest, closeFn, nil
}

func ServeCmd(config Config) *commander.Command {
	var opts tagOptions
	cmd := &commander.Command{
		Run: func(cmd *commander.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: %s", cmd.UsageLine)
			}
			serveLogger := logger.NewLogger("API service")

			apiRequest, closeFn, err := newAPIRequest(config, opts, args[0])
			if err != nil {
				return err
			}
			defer closeFn()

			http.HandleFunc("/", apiRequest.ProcessData)
			host := fmt.Sprintf(":%s", config.APIPort)
			serveLogger.Info().
				Bool("cache", apiRequest.Cache != nil).
				Msgf("REST API on %s", host)
			return http.ListenAndServe(host, nil)
		},
		UsageLine: "serve [-baseline] [-rules] [-anchor] [-config file] <train>",
		Short:     "serves tagging over HTTP",
		Long: `
serve trains on <train> and tags the body of every POST / request. Set
POSTAG_REDIS_HOST to cache responses in redis.
`,
		Flag: *flag.NewFlagSet("serve", flag.ExitOnError),
	}
	addTagFlags(&cmd.Flag, &opts)
	return cmd
}
