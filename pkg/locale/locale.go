package locale

import (
	"context"
	"strings"
)

// localeKey is a context key type for storing locale information.
type localeKey struct{}

// ParseLang parses and validates a language code.
// It returns the default language if the provided code is not supported.
// The input is case-insensitive and trimmed of whitespace.
func ParseLang(lang string) string {
	lang = strings.TrimSpace(strings.ToLower(lang))

	switch lang {
	case EN, "english":
		return EN
	case RU, "russian", "русский":
		return RU
	default:
		return DefaultLang
	}
}

// IsValidLang checks if a language code is supported.
func IsValidLang(lang string) bool {
	lang = strings.TrimSpace(strings.ToLower(lang))
	for _, supported := range LangList {
		if lang == supported {
			return true
		}
	}
	return false
}

// SetLangToContext stores the language code in the context.
func SetLangToContext(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeKey{}, lang)
}

// GetLang retrieves the locale from context, returning the default if not found.
func GetLang(ctx context.Context) string {
	lang, ok := ctx.Value(localeKey{}).(string)
	if !ok || !IsValidLang(lang) {
		return DefaultLang
	}
	return lang
}
