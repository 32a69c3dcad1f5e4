package guardian

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mothercore/mothercore/core"
)

func TestDefaultConstitution_OrderAndRules(t *testing.T) {
	articles := DefaultConstitution()
	require.Len(t, articles, 6)
	assert.Equal(t, "protect-sentient-welfare", articles[0].Principle.ID)
	assert.NotNil(t, articles[0].Rule)
	// truthfulness abstains via nil rule
	assert.Equal(t, "truthfulness", articles[2].Principle.ID)
	assert.Nil(t, articles[2].Rule)
}

func TestLoadConstitution_MissingFileFallsBack(t *testing.T) {
	ps, err := LoadConstitution(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Len(t, ps, 6)
}

func TestLoadConstitution_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constitution.yaml")
	doc := `principles:
  - id: be-kind
    statement: Be kind.
    priority: 1
  - id: be-careful
    statement: Be careful.
    priority: 2
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	ps, err := LoadConstitution(path)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, core.Principle{ID: "be-kind", Statement: "Be kind.", Priority: 1}, ps[0])
}

func TestLoadConstitution_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constitution.json")
	doc := `{"principles":[{"id":"be-kind","statement":"Be kind.","priority":1}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	ps, err := LoadConstitution(path)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "be-kind", ps[0].ID)
}

func TestLoadConstitution_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constitution.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"principles":[]}`), 0o644))
	_, err := LoadConstitution(path)
	assert.Error(t, err)
}
