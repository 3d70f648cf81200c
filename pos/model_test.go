package pos

import (
	"text2phenotype.com/postag/tokenizer"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

const (
	exampleCorpus = "The/DT dog/NN runs/VBZ ./."
	verbCorpus    = `the/DT saw/NN ./.
he/PRP saw/VBD it/PRP ./.
he/PRP ran/VBD ./.
he/PRP ate/VBD ./.
she/PRP went/VBD ./.`
)

func mustTrain(t *testing.T, text string) *Tables {
	t.Helper()
	tables, err := Train(text)
	require.NoError(t, err)
	return tables
}

func TestTrainExample(t *testing.T) {
	tables := mustTrain(t, exampleCorpus)

	for word, tag := range map[string]string{"dog": "NN", "runs": "VBZ", "The": "DT", ".": "."} {
		p, isOk := tables.Emission(word, tag)
		require.True(t, isOk, word)
		assert.Equal(t, 1.0, p, word)
	}
	assert.Equal(t, map[string]int{"DT": 1, "NN": 1, "VBZ": 1, ".": 1, StartTag: 1}, tables.tagFreq)
	assert.Equal(t, []string{StartTag, "DT", "NN", "VBZ", "."}, tables.Tags())
	assert.Equal(t, 4, tables.Tokens)
	assert.Len(t, tables.Fingerprint, 16)
}

func TestTrainDistributionsSumToOne(t *testing.T) {
	tables := mustTrain(t, verbCorpus+"\n[ the/DT man/NN ] that/WDT ran/VBD|VBN ./.")

	for _, tag := range tables.Tags() {
		if tag == StartTag {
			continue
		}
		emissionSum := 0.0
		for word := range tables.emission {
			if p, isOk := tables.Emission(word, tag); isOk {
				emissionSum += p
			}
		}
		assert.InDelta(t, 1.0, emissionSum, 1e-9, "emission of %s", tag)

		transitionSum := 0.0
		for _, p := range tables.transition[tag] {
			transitionSum += p
		}
		assert.InDelta(t, 1.0, transitionSum, 1e-9, "transition into %s", tag)
	}
}

func TestTrainSentenceReset(t *testing.T) {
	tables := mustTrain(t, "A/DT b/NN ./. C/DT d/NN !/. Really/RB ?/.")

	p, isOk := tables.Transition("DT", StartTag)
	require.True(t, isOk)
	assert.Equal(t, 1.0, p)
	_, isOk = tables.Transition("DT", ".")
	assert.False(t, isOk)
	_, isOk = tables.Transition("RB", ".")
	assert.False(t, isOk)
	assert.Equal(t, 3, tables.Sentences())
}

func TestTrainAlternatesAndMarkers(t *testing.T) {
	tables := mustTrain(t, "[ b/VBZ|VBD ] c/NN ./.")

	assert.Equal(t, []string{"VBZ"}, tables.Candidates("b"))
	assert.Equal(t, 0, tables.TagFrequency("VBD"))
	assert.Empty(t, tables.Candidates("["))
	assert.Equal(t, 3, tables.Tokens)
}

func TestTrainCandidateOrder(t *testing.T) {
	tables := mustTrain(t, "x/B y/C ./. x/A y/C ./. x/B z/C ./.")
	assert.Equal(t, []string{"B", "A"}, tables.Candidates("x"))
}

func TestTrainMalformed(t *testing.T) {
	_, err := Train("The/DT dog runs/VBZ")
	var malformed tokenizer.MalformedTokenError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "dog", malformed.Token)
}

func TestUnknownWords(t *testing.T) {
	tables := mustTrain(t, "The/DT dog/NN runs/VBZ ./. A/DT cat/NN sleeps/VBZ ./.")
	cache := NewUnknownWords(tables, "NN")

	tag, p, err := cache.LookupOrInsertDefault("zebra")
	require.NoError(t, err)
	assert.Equal(t, "NN", tag)
	assert.Equal(t, 0.5, p)

	tag, p, err = cache.LookupOrInsertDefault("zebra")
	require.NoError(t, err)
	assert.Equal(t, "NN", tag)
	assert.Equal(t, 0.5, p)
	assert.Equal(t, 1, cache.Len())

	cached, isOk := cache.Emission("zebra", "NN")
	assert.True(t, isOk)
	assert.Equal(t, 0.5, cached)
	_, isOk = cache.Emission("zebra", "VBZ")
	assert.False(t, isOk)

	_, _, err = NewUnknownWords(tables, "FW").LookupOrInsertDefault("zebra")
	var zeroErr DivisionByZeroError
	require.True(t, errors.As(err, &zeroErr))
	assert.Equal(t, "FW", zeroErr.Tag)
}
