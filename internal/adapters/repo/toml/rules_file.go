package toml

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/seatwise/seatplan/internal/domain"
)

const currentRulesVersion = 1

type rulesFileSchema struct {
	Version  int          `toml:"version"`
	Rules    []ruleSchema `toml:"rules"`
	CatchAll *ruleSchema  `toml:"catch_all"`
}

type ruleSchema struct {
	Name string `toml:"name"`
	// Kind defaults to "accommodation" when omitted.
	Kind          string `toml:"kind,omitempty"`
	Pattern       string `toml:"pattern,omitempty"`
	Pool          string `toml:"pool,omitempty"`
	AllAdjustable bool   `toml:"all_adjustable,omitempty"`
}

// LoadRules reads an ordered cohort rule list from a TOML file. Rule order in
// the file is the priority order. A file without a [catch_all] table falls
// back to the built-in main cohort.
func LoadRules(path string) ([]domain.Rule, domain.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.Rule{}, fmt.Errorf("read rules file: %w", err)
	}

	var file rulesFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, domain.Rule{}, fmt.Errorf("decode rules file: %w", err)
	}
	if file.Version > currentRulesVersion {
		return nil, domain.Rule{}, fmt.Errorf("unsupported rules schema version %d (current %d)", file.Version, currentRulesVersion)
	}

	rules := make([]domain.Rule, 0, len(file.Rules))
	for _, entry := range file.Rules {
		rule := entry.toDomain()
		if err := rule.Validate(); err != nil {
			return nil, domain.Rule{}, fmt.Errorf("rules file %s: %w", path, err)
		}
		rules = append(rules, rule)
	}

	catchAll := domain.DefaultCatchAll()
	if file.CatchAll != nil {
		catchAll = file.CatchAll.toDomain()
		if catchAll.Name == "" || !catchAll.Pool.Valid() {
			return nil, domain.Rule{}, fmt.Errorf("rules file %s: invalid catch_all", path)
		}
	}

	return rules, catchAll, nil
}

func (s ruleSchema) toDomain() domain.Rule {
	kind := domain.RuleKind(s.Kind)
	if kind == "" {
		kind = domain.RuleAccommodation
	}

	return domain.Rule{
		Name:    s.Name,
		Kind:    kind,
		Pattern: s.Pattern,
		Pool: domain.PoolSelector{
			Category:      domain.Category(s.Pool),
			AllAdjustable: s.AllAdjustable,
		},
	}
}
