package models

import "strings"

type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
	LangHebrew  Language = "he"
)

// ParseLanguage normalizes a lang query parameter. Unknown or empty
// values fall back to English.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangArabic:
		return LangArabic
	case LangHebrew:
		return LangHebrew
	default:
		return LangEnglish
	}
}

// Localizable is a per-language text block.
type Localizable interface {
	Empty() bool
}

// Translations holds one text block per supported language.
type Translations[T Localizable] struct {
	EN T `bson:"en" json:"en"`
	AR T `bson:"ar" json:"ar"`
	HE T `bson:"he" json:"he"`
}

// Localize returns the block for lang. A missing block falls back to
// English, then to the first non-empty translation.
func (t Translations[T]) Localize(lang Language) T {
	var pick T
	switch lang {
	case LangArabic:
		pick = t.AR
	case LangHebrew:
		pick = t.HE
	default:
		pick = t.EN
	}
	if !pick.Empty() {
		return pick
	}
	if !t.EN.Empty() {
		return t.EN
	}
	if !t.AR.Empty() {
		return t.AR
	}
	return t.HE
}
