package i18n

// Key→string lookup by language. Lookup is pure; the only mutable state is
// the active language flag on a Translator value.

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageBengali Language = "bn"
)

type Entry map[Language]string

type Table map[string]Entry

type Translator struct {
	table Table
	lang  Language
}

func NewTranslator(table Table, lang Language) *Translator {
	if lang != LanguageEnglish && lang != LanguageBengali {
		lang = LanguageEnglish
	}

	return &Translator{table: table, lang: lang}
}

func (t *Translator) Language() Language {
	return t.lang
}

func (t *Translator) SetLanguage(lang Language) {
	if lang == LanguageEnglish || lang == LanguageBengali {
		t.lang = lang
	}
}

// T resolves a translation key in the active language. Unknown keys resolve
// to the key itself so missing strings stay visible instead of rendering
// blank.
func (t *Translator) T(key string) string {
	entry, ok := t.table[key]
	if !ok {
		return key
	}

	if s, ok := entry[t.lang]; ok && s != "" {
		return s
	}

	if s, ok := entry[LanguageEnglish]; ok {
		return s
	}

	return key
}
