// Where: internal/config/migrations.go
// What: Layered migrations config loader.
// Why: Build the ordered rule set from the base file plus drop-in fragments.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ublue-os/eol-rebaser/internal/logging"
	"github.com/ublue-os/eol-rebaser/internal/meta"
	"github.com/ublue-os/eol-rebaser/internal/migrate"
)

// ErrNotFound reports that the base migrations config does not exist.
// Callers treat it as "no migrations configured", not as a failure.
var ErrNotFound = errors.New("migrations config not found")

const dateLayout = "2006-01-02"

// Migration is one raw rule entry as written in the config file.
type Migration struct {
	Name          string `yaml:"name"`
	FromPattern   string `yaml:"from_pattern"`
	ToImage       string `yaml:"to_image"`
	Reason        string `yaml:"reason"`
	EffectiveDate string `yaml:"effective_date"`
}

// document is the top-level shape of a config file. Rule entries stay as
// yaml.Node so one malformed entry never poisons its neighbours.
type document struct {
	Migrations []yaml.Node `yaml:"migrations"`
}

// Report accumulates non-fatal findings from a load: configs read in order,
// warnings for skipped or degraded rules, and the skip count.
type Report struct {
	Files    []string
	Warnings []string
	Skipped  int
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) skipf(source string, index int, name string, format string, args ...any) {
	r.Skipped++
	prefix := fmt.Sprintf("%s: rule %d (%s): ", source, index, name)
	r.Warnings = append(r.Warnings, prefix+fmt.Sprintf(format, args...))
}

// DropInDir returns the drop-in directory that extends the given base config.
func DropInDir(basePath string) string {
	return basePath + meta.DropInSuffix
}

// Load reads the base config and every drop-in fragment and returns the
// combined rule set in evaluation order: base rules first, then each drop-in
// file's rules in lexical filename order. A missing base yields ErrNotFound;
// an unreadable or unparseable base is a hard error. Unparseable drop-ins
// and invalid rules are skipped and recorded in the Report.
func Load(basePath, dropInDir string) (migrate.RuleSet, *Report, error) {
	report := &Report{}

	raw, err := os.ReadFile(basePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, basePath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read migrations config: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", basePath, err)
	}
	report.Files = append(report.Files, basePath)
	rules := appendRules(nil, doc, basePath, report)

	rules = loadDropIns(rules, dropInDir, report)

	for _, warning := range report.Warnings {
		logging.Logger().Warn(warning)
	}
	logging.Logger().WithFields(logrus.Fields{
		"files":   len(report.Files),
		"rules":   len(rules),
		"skipped": report.Skipped,
	}).Debug("loaded migration rules")

	return migrate.NewRuleSet(rules), report, nil
}

func loadDropIns(rules []migrate.Rule, dropInDir string, report *Report) []migrate.Rule {
	entries, err := os.ReadDir(dropInDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			report.warnf("%s: %v", dropInDir, err)
		}
		return rules
	}

	// os.ReadDir returns entries sorted by filename, which is the
	// documented drop-in precedence order.
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dropInDir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			report.warnf("%s: %v", path, err)
			continue
		}
		var doc document
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			report.warnf("%s: %v", path, err)
			continue
		}
		report.Files = append(report.Files, path)
		rules = appendRules(rules, doc, path, report)
	}
	return rules
}

// appendRules validates and compiles each rule entry from doc, appending the
// survivors to rules. Schema violations, undecodable entries, and invalid
// patterns skip the rule; an unparseable effective date keeps the rule but
// marks it never effective until forced.
func appendRules(rules []migrate.Rule, doc document, source string, report *Report) []migrate.Rule {
	for i := range doc.Migrations {
		node := &doc.Migrations[i]

		if err := validateRuleNode(node); err != nil {
			report.skipf(source, i, ruleName(node), "%v", err)
			continue
		}

		var m Migration
		if err := node.Decode(&m); err != nil {
			report.skipf(source, i, ruleName(node), "decode rule: %v", err)
			continue
		}

		pattern, err := regexp.Compile(m.FromPattern)
		if err != nil {
			report.skipf(source, i, m.Name, "invalid from_pattern: %v", err)
			continue
		}

		rule := migrate.Rule{
			Name:    m.Name,
			Pattern: pattern,
			Target:  m.ToImage,
			Reason:  m.Reason,
		}

		if m.EffectiveDate != "" {
			when, err := time.Parse(dateLayout, m.EffectiveDate)
			if err != nil {
				rule.BadDate = true
				report.warnf("%s: rule %d (%s): invalid effective_date %q, rule applies only with --force",
					source, i, m.Name, m.EffectiveDate)
			} else {
				rule.Effective = &when
			}
		}

		rules = append(rules, rule)
	}
	return rules
}

func validateRuleNode(node *yaml.Node) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("marshal rule: %w", err)
	}
	return validateRuleBytes(raw)
}

// ruleName extracts the name field for warning messages, best effort.
func ruleName(node *yaml.Node) string {
	var probe struct {
		Name string `yaml:"name"`
	}
	if err := node.Decode(&probe); err != nil || probe.Name == "" {
		return "unnamed"
	}
	return probe.Name
}
