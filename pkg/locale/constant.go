package locale

// Supported languages.
const (
	EN = "en" // English
	RU = "ru" // Russian
)

// LangList contains all supported language codes.
var LangList = []string{EN, RU}

// DefaultLang is the language used when no valid locale is provided.
var DefaultLang = EN
