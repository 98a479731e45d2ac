// Where: internal/migrate/resolver.go
// What: Rule matching and target image resolution.
// Why: Decide, without side effects, whether the booted image is end-of-life.
package migrate

import (
	"strings"
	"time"
)

// Match describes a resolved migration: the winning rule and the fully
// expanded target image.
type Match struct {
	Rule   Rule
	Target string
}

// Resolve returns the migration that applies to currentImage, or nil when
// none does. Rules are tried in order and the first eligible rule whose
// pattern matches decides the outcome. A rule that matches but is not yet
// effective does not block later rules. When the winning rule's expanded
// target equals currentImage the result is nil: rebasing onto the image
// already booted is not a migration.
func Resolve(currentImage string, rules RuleSet, now time.Time, force bool) *Match {
	for _, rule := range rules {
		if !rule.EligibleAt(now, force) {
			continue
		}
		idx := rule.Pattern.FindStringSubmatchIndex(currentImage)
		if idx == nil {
			continue
		}
		target := expandTarget(rule.Target, currentImage, idx)
		if target == currentImage {
			return nil
		}
		return &Match{Rule: rule, Target: target}
	}
	return nil
}

// expandTarget substitutes backreferences in template with capture groups
// from a pattern match against src. idx is the pair slice produced by
// FindStringSubmatchIndex. Supported forms: \1 through \99 for capture
// groups, \0 for the whole matched text, \\ for a literal backslash. A
// reference to a group that is out of range or did not participate in the
// match expands to the empty string. Any other escape is kept literally,
// and a template without backslashes is returned unchanged.
func expandTarget(template, src string, idx []int) string {
	if !strings.ContainsRune(template, '\\') {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '\\' || i+1 == len(template) {
			b.WriteByte(ch)
			continue
		}
		next := template[i+1]
		switch {
		case next == '\\':
			b.WriteByte('\\')
			i++
		case next >= '0' && next <= '9':
			group := int(next - '0')
			i++
			if i+1 < len(template) && template[i+1] >= '0' && template[i+1] <= '9' {
				group = group*10 + int(template[i+1]-'0')
				i++
			}
			b.WriteString(groupText(src, idx, group))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// groupText extracts capture group text from a FindStringSubmatchIndex
// result. Returns "" for groups beyond the pattern or absent from the match.
func groupText(src string, idx []int, group int) string {
	if 2*group+1 >= len(idx) {
		return ""
	}
	start, end := idx[2*group], idx[2*group+1]
	if start < 0 || end < 0 {
		return ""
	}
	return src[start:end]
}
