package helper

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var reDash = regexp.MustCompile(`-+`)

// GenerateSlug normalizes free text into a slug:
// - lower-case, diacritics stripped (é → e)
// - spaces & other non-alnum become "-"
// - collapse multiple "-" into one, trim "-" at both ends
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var stripped []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // mark nonspacing
			continue
		}
		stripped = append(stripped, r)
	}
	s = string(stripped)

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else {
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	out = reDash.ReplaceAllString(out, "-")
	return out
}

// IsSlugTaken checks (case-insensitive) whether a slug already exists in
// table.column. Used for the pre-insert Conflict check; the unique index
// stays the last line of defense.
func IsSlugTaken(db *gorm.DB, table, column, slug string) (bool, error) {
	var cnt int64
	if err := db.Table(table).
		Where(fmt.Sprintf("lower(%s) = lower(?)", column), slug).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
