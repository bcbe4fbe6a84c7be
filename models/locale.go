package models

import (
	"fmt"
	"strings"
)

type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// Languages lists the supported languages in display order.
var Languages = []Language{English, Arabic}

func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Arabic:
		return Arabic, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Direction is the text direction the language is written in.
func (l Language) Direction() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == Arabic {
		return English
	}
	return Arabic
}

// LocalizedText holds one string per language tag.
type LocalizedText map[Language]string

// In returns the text for lang, falling back to English and then to any
// non-empty translation.
func (t LocalizedText) In(lang Language) string {
	if s := t[lang]; s != "" {
		return s
	}
	if s := t[English]; s != "" {
		return s
	}
	for _, l := range Languages {
		if s := t[l]; s != "" {
			return s
		}
	}
	return ""
}

func (t LocalizedText) Clone() LocalizedText {
	if t == nil {
		return nil
	}
	c := make(LocalizedText, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// LocalizedList holds one string list per language tag.
type LocalizedList map[Language][]string

func (t LocalizedList) In(lang Language) []string {
	if s := t[lang]; len(s) > 0 {
		return s
	}
	if s := t[English]; len(s) > 0 {
		return s
	}
	for _, l := range Languages {
		if s := t[l]; len(s) > 0 {
			return s
		}
	}
	return nil
}

func (t LocalizedList) Clone() LocalizedList {
	if t == nil {
		return nil
	}
	c := make(LocalizedList, len(t))
	for k, v := range t {
		c[k] = append([]string(nil), v...)
	}
	return c
}
