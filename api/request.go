package api

import (
	"text2phenotype.com/postag/pipeline"
	"text2phenotype.com/postag/redis"
	"context"
	"github.com/rs/zerolog"
	"io/ioutil"
	"net/http"
	"sync"
)

const FingerprintHeader = "X-Model-Fingerprint"

type Cache interface {
	GetOrCompute(ctx context.Context, key string, compute func() (string, error)) (string, error)
}

// Request serves tagging over HTTP. Decoding is serialized: the pipeline's
// unknown word cache is shared by all requests.
type Request struct {
	Pipeline *pipeline.Pipeline
	Cache    Cache
	mu       sync.Mutex
}

func (req *Request) tag(text string, tid string) (string, error) {
	req.mu.Lock()
	defer req.mu.Unlock()
	return req.Pipeline.Process(pipeline.Request{Text: text, Tid: tid})
}

// cached tags text through the cache. A failing cache is bypassed: the text
// is tagged directly and only tagging errors reach the caller.
func (req *Request) cached(ctx context.Context, logger zerolog.Logger, text string, tid string) (string, error) {
	var tagged string
	var tagErr error
	computed := false
	key := redis.CacheKey(req.Pipeline.Model.Fingerprint, text)
	resp, err := req.Cache.GetOrCompute(ctx, key, func() (string, error) {
		computed = true
		tagged, tagErr = req.tag(text, tid)
		return tagged, tagErr
	})
	switch {
	case err == nil:
		return resp, nil
	case tagErr != nil:
		return "", tagErr
	}

	logger.Warn().Err(err).Msg("Response cache failed, tagging without it")
	if computed {
		return tagged, nil
	}
	return req.tag(text, tid)
}

func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(FingerprintHeader, req.Pipeline.Model.Fingerprint)

	logger := makeRequestLogger(r)

	if r.Method != http.MethodPost {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := ioutil.ReadAll(r.Body)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	text := string(msg)
	tid := r.Header.Get(RequestIdHeader)
	logger.Info().Msg("Starting pipeline for request from API")

	var resp string
	if req.Cache != nil {
		resp, err = req.cached(r.Context(), logger, text, tid)
	} else {
		resp, err = req.tag(text, tid)
	}
	if err != nil {
		logger.Err(err).Int("status", http.StatusUnprocessableEntity).Msg("Failed to tag request")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	_, _ = w.Write([]byte(resp))
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}
