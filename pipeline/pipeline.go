package pipeline

import (
	"text2phenotype.com/postag/logger"
	"text2phenotype.com/postag/pos"
	"text2phenotype.com/postag/tokenizer"
	"text2phenotype.com/postag/types"
	"bufio"
	"fmt"
	"github.com/rs/zerolog"
	"io"
	"strings"
)

type Params struct {
	TrainText string
	Policy    pos.Policy
	Config    types.Configuration
}

// Pipeline owns one trained model and the unknown word cache of its run.
// Sentences are tagged one at a time, in document order.
type Pipeline struct {
	Model     *pos.Tables
	Unknown   *pos.UnknownWords
	Policy    pos.Policy
	tagger    pos.Tagger
	reqLogger zerolog.Logger
}

func New(params Params) (*Pipeline, error) {
	pplnLogger := logger.NewLogger("Pipeline")

	if err := params.Config.Validate(); err != nil {
		return nil, err
	}
	model, err := pos.Train(params.TrainText)
	if err != nil {
		return nil, err
	}
	unknown := pos.NewUnknownWords(model, params.Config.UnknownTag)
	tagger, err := pos.NewTagger(params.Policy, model, unknown, params.Config)
	if err != nil {
		return nil, err
	}

	pplnLogger.Info().
		Str("fingerprint", model.Fingerprint).
		Str("policy", string(params.Policy)).
		Str("config", params.Config.Name).
		Int("tokens", model.Tokens).
		Int("tags", len(model.Tags())).
		Str("unknown_tag", unknown.Tag()).
		Msg("Model trained")

	return &Pipeline{
		Model:     model,
		Unknown:   unknown,
		Policy:    params.Policy,
		tagger:    tagger,
		reqLogger: pplnLogger,
	}, nil
}

// TagSentence tags the words of one sentence, bracket markers left out.
func (ppln *Pipeline) TagSentence(sent types.Sentence) ([]types.Token, error) {
	return ppln.tagger(sent.Words())
}

// Write tags text and writes one line per sentence as soon as it is decoded.
// Lines written before a failing sentence stay written.
func (ppln *Pipeline) Write(w io.Writer, req Request) error {
	out := bufio.NewWriter(w)
	sentences := tokenizer.SplitSentences(req.Text)
	tagged := 0
	for i, sent := range sentences {
		if sent.IsEmpty() {
			continue
		}
		tokens, err := ppln.TagSentence(sent)
		if err != nil {
			_ = out.Flush()
			return fmt.Errorf("sentence %d: %w", i, err)
		}
		if _, err := out.WriteString(types.JoinTokens(tokens)); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
		tagged++
	}

	ppln.reqLogger.Debug().
		Str("tid", req.Tid).
		Int("sentences", tagged).
		Int("unknown_words", ppln.Unknown.Len()).
		Msg("Request tagged")
	return out.Flush()
}

func (ppln *Pipeline) Process(req Request) (string, error) {
	var sb strings.Builder
	if err := ppln.Write(&sb, req); err != nil {
		return "", err
	}
	return sb.String(), nil
}
