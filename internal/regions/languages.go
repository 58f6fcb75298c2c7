package regions

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one entry of the language vocabulary.
type Language struct {
	Short string // tag form used in release names, e.g. "En"
	Long  string // display form used in configuration, e.g. "English"
	ISO   string // ISO 639-1 code
}

var languages = []Language{
	{"Ar", "Arabic", "ar"},
	{"Bg", "Bulgarian", "bg"},
	{"Ca", "Catalan", "ca"},
	{"Zh", "Chinese", "zh"},
	{"Hr", "Croatian", "hr"},
	{"Cs", "Czech", "cs"},
	{"Da", "Danish", "da"},
	{"Nl", "Dutch", "nl"},
	{"En", "English", "en"},
	{"Et", "Estonian", "et"},
	{"Fi", "Finnish", "fi"},
	{"Fr", "French", "fr"},
	{"De", "German", "de"},
	{"El", "Greek", "el"},
	{"He", "Hebrew", "he"},
	{"Hi", "Hindi", "hi"},
	{"Hu", "Hungarian", "hu"},
	{"Is", "Icelandic", "is"},
	{"Id", "Indonesian", "id"},
	{"It", "Italian", "it"},
	{"Ja", "Japanese", "ja"},
	{"Ko", "Korean", "ko"},
	{"Lt", "Lithuanian", "lt"},
	{"No", "Norwegian", "no"},
	{"Pl", "Polish", "pl"},
	{"Pt", "Portuguese", "pt"},
	{"Ro", "Romanian", "ro"},
	{"Ru", "Russian", "ru"},
	{"Sr", "Serbian", "sr"},
	{"Sk", "Slovak", "sk"},
	{"Sl", "Slovenian", "sl"},
	{"Es", "Spanish", "es"},
	{"Sv", "Swedish", "sv"},
	{"Th", "Thai", "th"},
	{"Tr", "Turkish", "tr"},
	{"Uk", "Ukrainian", "uk"},
	{"Vi", "Vietnamese", "vi"},
}

var (
	byShort map[string]*Language
	byLower map[string]*Language
)

func init() {
	byShort = make(map[string]*Language, len(languages))
	byLower = make(map[string]*Language, len(languages)*3)
	for i := range languages {
		l := &languages[i]
		byShort[l.Short] = l
		byLower[strings.ToLower(l.Short)] = l
		byLower[strings.ToLower(l.Long)] = l
		byLower[l.ISO] = l
	}
}

// Languages returns the full vocabulary in alphabetical order of long name.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// IsLanguageTag reports whether value is a short language tag exactly as it
// appears in release names.
func IsLanguageTag(value string) bool {
	_, ok := byShort[value]
	return ok
}

// LanguageCode resolves a long name, short tag, or BCP 47 code to the short
// tag form. Unrecognized input returns false.
func LanguageCode(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}
	if l, ok := byLower[strings.ToLower(trimmed)]; ok {
		return l.Short, true
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", false
	}
	if l, ok := byLower[base.String()]; ok {
		return l.Short, true
	}
	return "", false
}

// LanguageName returns the long name for a short tag, or the tag itself.
func LanguageName(short string) string {
	if l, ok := byShort[short]; ok {
		return l.Long
	}
	return short
}
