package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMapping = `
Enzymes: ["1A", "5E"]
Amino Acids: ["1A"]
Thermodynamics: ["5E", "4B"]
Kinetics: ["5E", "5E"]
`

func TestParseTopicMappingBuildsReverseIndex(t *testing.T) {
	m, err := ParseTopicMapping([]byte(sampleMapping))
	require.NoError(t, err)

	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []string{"1A", "5E"}, m.CodesFor("Enzymes"))
	assert.Equal(t, []string{"5E"}, m.CodesFor("Kinetics"), "duplicate codes collapse")
	assert.Equal(t, []string{"Amino Acids", "Enzymes"}, m.TopicsFor("1A"))
	assert.Equal(t, []string{"Enzymes", "Kinetics", "Thermodynamics"}, m.TopicsFor("5E"))
	assert.Empty(t, m.TopicsFor("9Z"))
}

func TestTopicsForReturnsCopy(t *testing.T) {
	m, err := ParseTopicMapping([]byte(sampleMapping))
	require.NoError(t, err)

	topics := m.TopicsFor("1A")
	topics[0] = "mutated"
	assert.Equal(t, []string{"Amino Acids", "Enzymes"}, m.TopicsFor("1A"))
}

func TestParseTopicMappingErrors(t *testing.T) {
	tests := map[string]string{
		"empty document": ``,
		"not a table":    `- just a list`,
		"no codes":       `Enzymes: []`,
		"blank code":     `Enzymes: ["1A", " "]`,
		"blank topic":    `" ": ["1A"]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTopicMapping([]byte(body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidMapping), "got %v", err)
		})
	}
}

func TestLoadTopicMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleMapping), 0o600))

	m, err := LoadTopicMapping(path)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())

	_, err = LoadTopicMapping(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
