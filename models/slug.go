package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
)

// symbolWords keeps titles like "C++" and "C#" apart; other punctuation is dropped.
var symbolWords = map[rune]string{
	'+': " plus ",
	'#': " sharp ",
}

// Slugify lowercases a title and joins its words with hyphens.
func Slugify(title string) string {
	return slug.Make(slug.SubstituteRune(title, symbolWords))
}

// Today returns the current UTC date for DATE columns.
func Today() datatypes.Date {
	now := time.Now().UTC()
	return datatypes.Date(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
}

// All lists every model in dependency order for migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&OTP{},
		&Blog{},
		&Comment{},
		&Contact{},
		&Project{},
		&Service{},
		&ServiceDetail{},
		&Testimonial{},
	}
}
