package types

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultUnknownTag, cfg.UnknownTag)
	assert.Equal(t, DecoderArgMax, cfg.Decoder)
	assert.True(t, cfg.Rules[0].Matches("PRP", "VBD"))
	assert.False(t, cfg.Rules[0].Matches("PRP", "VBZ"))
	assert.True(t, cfg.Rules[2].Matches("POS", "NNS"))
}

func TestParseConfiguration(t *testing.T) {
	t.Run("Overrides defaults", func(t *testing.T) {
		cfg, err := ParseConfiguration([]byte("unknown_tag: NNP\ndecoder: anchor\nrules:\n  - previous: MD\n    prefer: [VB]\n"))
		require.NoError(t, err)
		assert.Equal(t, "NNP", cfg.UnknownTag)
		assert.Equal(t, DecoderAnchor, cfg.Decoder)
		assert.Equal(t, DefaultAnchorTag, cfg.AnchorTag)
		assert.Equal(t, []OverrideRule{{Previous: "MD", Prefer: []string{"VB"}}}, cfg.Rules)
		assert.Equal(t, DefaultConfiguration().Swaps, cfg.Swaps)
		assert.False(t, cfg.LogSpace)
	})
	t.Run("Log space", func(t *testing.T) {
		cfg, err := ParseConfiguration([]byte("log_space: true\n"))
		require.NoError(t, err)
		assert.True(t, cfg.LogSpace)
	})
	t.Run("Wrong decoder", func(t *testing.T) {
		_, err := ParseConfiguration([]byte("decoder: beam\n"))
		assert.Error(t, err)
	})
	t.Run("Start tag as unknown tag", func(t *testing.T) {
		_, err := ParseConfiguration([]byte("unknown_tag: <start>\n"))
		assert.Error(t, err)
	})
	t.Run("Broken yaml", func(t *testing.T) {
		_, err := ParseConfiguration([]byte("rules: [\n"))
		assert.Error(t, err)
	})
}

func TestLoadConfiguration(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "wsj.yaml")
	require.NoError(t, ioutil.WriteFile(filePath, []byte("swaps: []\n"), 0644))

	cfg, err := LoadConfiguration(filePath)
	require.NoError(t, err)
	assert.Equal(t, "wsj", cfg.Name)
	assert.Equal(t, filePath, cfg.FilePath)
	assert.Empty(t, cfg.Swaps)

	_, err = LoadConfiguration(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
