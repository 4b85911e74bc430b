package language

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrUnknown is returned when an input cannot be mapped to a supported language.
var ErrUnknown = errors.New("unsupported language")

type entry struct {
	code string
	name string
}

// languages is ordered by language-token position. Token IDs are assigned as
// start-of-transcript + 1 + index, so the order must never change.
var languages = []entry{
	{"en", "english"}, {"zh", "chinese"}, {"de", "german"}, {"es", "spanish"},
	{"ru", "russian"}, {"ko", "korean"}, {"fr", "french"}, {"ja", "japanese"},
	{"pt", "portuguese"}, {"tr", "turkish"}, {"pl", "polish"}, {"ca", "catalan"},
	{"nl", "dutch"}, {"ar", "arabic"}, {"sv", "swedish"}, {"it", "italian"},
	{"id", "indonesian"}, {"hi", "hindi"}, {"fi", "finnish"}, {"vi", "vietnamese"},
	{"he", "hebrew"}, {"uk", "ukrainian"}, {"el", "greek"}, {"ms", "malay"},
	{"cs", "czech"}, {"ro", "romanian"}, {"da", "danish"}, {"hu", "hungarian"},
	{"ta", "tamil"}, {"no", "norwegian"}, {"th", "thai"}, {"ur", "urdu"},
	{"hr", "croatian"}, {"bg", "bulgarian"}, {"lt", "lithuanian"}, {"la", "latin"},
	{"mi", "maori"}, {"ml", "malayalam"}, {"cy", "welsh"}, {"sk", "slovak"},
	{"te", "telugu"}, {"fa", "persian"}, {"lv", "latvian"}, {"bn", "bengali"},
	{"sr", "serbian"}, {"az", "azerbaijani"}, {"sl", "slovenian"}, {"kn", "kannada"},
	{"et", "estonian"}, {"mk", "macedonian"}, {"br", "breton"}, {"eu", "basque"},
	{"is", "icelandic"}, {"hy", "armenian"}, {"ne", "nepali"}, {"mn", "mongolian"},
	{"bs", "bosnian"}, {"kk", "kazakh"}, {"sq", "albanian"}, {"sw", "swahili"},
	{"gl", "galician"}, {"mr", "marathi"}, {"pa", "punjabi"}, {"si", "sinhala"},
	{"km", "khmer"}, {"sn", "shona"}, {"yo", "yoruba"}, {"so", "somali"},
	{"af", "afrikaans"}, {"oc", "occitan"}, {"ka", "georgian"}, {"be", "belarusian"},
	{"tg", "tajik"}, {"sd", "sindhi"}, {"gu", "gujarati"}, {"am", "amharic"},
	{"yi", "yiddish"}, {"lo", "lao"}, {"uz", "uzbek"}, {"fo", "faroese"},
	{"ht", "haitian creole"}, {"ps", "pashto"}, {"tk", "turkmen"}, {"nn", "nynorsk"},
	{"mt", "maltese"}, {"sa", "sanskrit"}, {"lb", "luxembourgish"}, {"my", "myanmar"},
	{"bo", "tibetan"}, {"tl", "tagalog"}, {"mg", "malagasy"}, {"as", "assamese"},
	{"tt", "tatar"}, {"haw", "hawaiian"}, {"ln", "lingala"}, {"ha", "hausa"},
	{"ba", "bashkir"}, {"jw", "javanese"}, {"su", "sundanese"}, {"yue", "cantonese"},
}

var nameAliases = map[string]string{
	"burmese":       "my",
	"valencian":     "ca",
	"flemish":       "nl",
	"haitian":       "ht",
	"letzeburgesch": "lb",
	"pushto":        "ps",
	"panjabi":       "pa",
	"moldavian":     "ro",
	"moldovan":      "ro",
	"sinhalese":     "si",
	"castilian":     "es",
	"mandarin":      "zh",
}

// codeAliases maps standard base codes to the model's legacy codes.
var codeAliases = map[string]string{
	"jv": "jw",
}

// displayAliases maps legacy model codes back to standard codes for display lookup.
var displayAliases = map[string]string{
	"jw": "jv",
}

var (
	byCode map[string]int
	byName map[string]string
)

func init() {
	byCode = make(map[string]int, len(languages))
	byName = make(map[string]string, len(languages)+len(nameAliases))
	for i, e := range languages {
		byCode[e.code] = i
		byName[e.name] = e.code
	}
	for alias, code := range nameAliases {
		byName[alias] = code
	}
}

// Codes returns every supported language code in token order.
func Codes() []string {
	out := make([]string, len(languages))
	for i, e := range languages {
		out[i] = e.code
	}
	return out
}

// Index reports the token-order position of a normalized language code.
func Index(code string) (int, bool) {
	idx, ok := byCode[code]
	return idx, ok
}

// Normalize maps a language hint to a supported model language code. An empty
// input yields an empty code and no error.
func Normalize(input string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	if value == "" {
		return "", nil
	}
	if _, ok := byCode[value]; ok {
		return value, nil
	}
	if code, ok := byName[value]; ok {
		return code, nil
	}
	tag, err := xlanguage.Parse(value)
	if err == nil {
		base, _ := tag.Base()
		code := base.String()
		if alias, ok := codeAliases[code]; ok {
			code = alias
		}
		if _, ok := byCode[code]; ok {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, input)
}

// NormalizeList normalizes and deduplicates a list of language hints,
// preserving first-seen order. Empty entries are skipped.
func NormalizeList(inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		code, err := Normalize(input)
		if err != nil {
			return nil, err
		}
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out, nil
}

// DisplayName returns an English display name for a language code. Returns
// "Unknown" for empty input and the uppercased input when nothing matches.
func DisplayName(code string) string {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return "Unknown"
	}
	lookup := trimmed
	if mapped, ok := displayAliases[lookup]; ok {
		lookup = mapped
	}
	if tag, err := xlanguage.Parse(lookup); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	if idx, ok := byCode[trimmed]; ok {
		return cases.Title(xlanguage.English).String(languages[idx].name)
	}
	return strings.ToUpper(trimmed)
}
