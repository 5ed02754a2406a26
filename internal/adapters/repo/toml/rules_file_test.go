package toml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwise/seatplan/internal/domain"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRulesKeepsFileOrder(t *testing.T) {
	t.Parallel()

	path := writeRulesFile(t, `version = 1

[[rules]]
name = "laptop"
pattern = "ms word"
pool = "ws"

[[rules]]
name = "standing"
kind = "adjustable"
all_adjustable = true

[catch_all]
name = "everyone"
pool = "open"
`)

	rules, catchAll, err := LoadRules(path)
	require.NoError(t, err)

	require.Len(t, rules, 2)
	assert.Equal(t, "laptop", rules[0].Name)
	assert.Equal(t, domain.RuleAccommodation, rules[0].Kind)
	assert.Equal(t, domain.CategoryWorkstation, rules[0].Pool.Category)
	assert.Equal(t, "standing", rules[1].Name)
	assert.Equal(t, domain.RuleAdjustable, rules[1].Kind)
	assert.True(t, rules[1].Pool.AllAdjustable)

	assert.Equal(t, "everyone", catchAll.Name)
	assert.Equal(t, domain.CategoryOpen, catchAll.Pool.Category)
}

func TestLoadRulesDefaultsCatchAll(t *testing.T) {
	t.Parallel()

	path := writeRulesFile(t, `version = 1

[[rules]]
name = "laptop"
pattern = "ms word"
pool = "ws"
`)

	_, catchAll, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultCatchAll(), catchAll)
}

func TestLoadRulesRejectsInvalidRule(t *testing.T) {
	t.Parallel()

	path := writeRulesFile(t, `version = 1

[[rules]]
pattern = "ms word"
pool = "ws"
`)

	_, _, err := LoadRules(path)
	assert.ErrorContains(t, err, "name is required")
}

func TestLoadRulesRejectsUnknownPool(t *testing.T) {
	t.Parallel()

	path := writeRulesFile(t, `version = 1

[[rules]]
name = "laptop"
pattern = "ms word"
pool = "lounge"
`)

	_, _, err := LoadRules(path)
	assert.ErrorContains(t, err, "invalid pool selector")
}

func TestLoadRulesRejectsUnsupportedVersion(t *testing.T) {
	t.Parallel()

	path := writeRulesFile(t, "version = 99\n")

	_, _, err := LoadRules(path)
	assert.ErrorContains(t, err, "unsupported rules schema version")
}

func TestLoadRulesMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := LoadRules(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "read rules file")
}
