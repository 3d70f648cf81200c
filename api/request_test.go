package api

import (
	"text2phenotype.com/postag/pipeline"
	"text2phenotype.com/postag/pos"
	"text2phenotype.com/postag/types"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type cacheMock struct {
	values map[string]string
	err    error
	// setErr fails the write after a successful compute.
	setErr   error
	computes int
}

func (mock *cacheMock) GetOrCompute(ctx context.Context, key string, compute func() (string, error)) (string, error) {
	if mock.err != nil {
		return "", mock.err
	}
	if value, isOk := mock.values[key]; isOk {
		return value, nil
	}
	mock.computes++
	value, err := compute()
	if err != nil {
		return "", err
	}
	if mock.setErr != nil {
		return "", mock.setErr
	}
	mock.values[key] = value
	return value, nil
}

func newRequest(t *testing.T, cache Cache) *Request {
	t.Helper()
	cfg := types.DefaultConfiguration()
	cfg.Decoder = types.DecoderAnchor
	ppln, err := pipeline.New(pipeline.Params{
		TrainText: "The/DT dog/NN runs/VBZ ./.",
		Policy:    pos.PolicyViterbi,
		Config:    cfg,
	})
	require.NoError(t, err)
	return &Request{Pipeline: ppln, Cache: cache}
}

func post(req *Request, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req.ProcessData(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestProcessData(t *testing.T) {
	req := newRequest(t, nil)

	rec := post(req, "The dog runs .")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The/DT dog/NN runs/VBZ ./.\n", rec.Body.String())
	assert.Equal(t, req.Pipeline.Model.Fingerprint, rec.Header().Get(FingerprintHeader))

	rec = post(req, "The dog")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	req.ProcessData(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestProcessDataCached(t *testing.T) {
	cache := &cacheMock{values: make(map[string]string)}
	req := newRequest(t, cache)

	rec := post(req, "The dog runs .")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, cache.values, 1)

	for key := range cache.values {
		cache.values[key] = "cached\n"
	}
	rec = post(req, "The dog runs .")
	assert.Equal(t, "cached\n", rec.Body.String())

	rec = post(req, "The dog")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, cache.values, 1)

}

func TestProcessDataCacheFailure(t *testing.T) {
	cache := &cacheMock{values: make(map[string]string), err: errors.New("redis down")}
	req := newRequest(t, cache)

	rec := post(req, "The dog runs .")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The/DT dog/NN runs/VBZ ./.\n", rec.Body.String())

	rec = post(req, "The dog")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	cache.err = nil
	cache.setErr = errors.New("redis down")
	rec = post(req, "The dog runs .")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The/DT dog/NN runs/VBZ ./.\n", rec.Body.String())
	assert.Equal(t, 1, cache.computes)
	assert.Empty(t, cache.values)
}

func TestRequestLoggerTid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("The dog"))
	r.Header.Set(RequestIdHeader, "req-1")

	var out bytes.Buffer
	logger := makeRequestLogger(r).Output(&out)
	logger.Info().Msg("Starting pipeline for request from API")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["tid"])
	assert.Equal(t, "API", entry["component"])
	info, isOk := entry[RequestInfoFieldsKey].(map[string]interface{})
	require.True(t, isOk)
	assert.Equal(t, http.MethodPost, info["method"])
}
