package pipeline

import (
	"strings"

	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
)

type language struct {
	name string
	iso3 string
}

// languages are the Whisper language codes with their names and ISO 639-3 codes
var languages = map[string]language{
	"en": {"english", "eng"}, "zh": {"chinese", "zho"}, "de": {"german", "deu"},
	"es": {"spanish", "spa"}, "ru": {"russian", "rus"}, "ko": {"korean", "kor"},
	"fr": {"french", "fra"}, "ja": {"japanese", "jpn"}, "pt": {"portuguese", "por"},
	"tr": {"turkish", "tur"}, "pl": {"polish", "pol"}, "ca": {"catalan", "cat"},
	"nl": {"dutch", "nld"}, "ar": {"arabic", "ara"}, "sv": {"swedish", "swe"},
	"it": {"italian", "ita"}, "id": {"indonesian", "ind"}, "hi": {"hindi", "hin"},
	"fi": {"finnish", "fin"}, "vi": {"vietnamese", "vie"}, "he": {"hebrew", "heb"},
	"uk": {"ukrainian", "ukr"}, "el": {"greek", "ell"}, "ms": {"malay", "msa"},
	"cs": {"czech", "ces"}, "ro": {"romanian", "ron"}, "da": {"danish", "dan"},
	"hu": {"hungarian", "hun"}, "ta": {"tamil", "tam"}, "no": {"norwegian", "nor"},
	"th": {"thai", "tha"}, "ur": {"urdu", "urd"}, "hr": {"croatian", "hrv"},
	"bg": {"bulgarian", "bul"}, "lt": {"lithuanian", "lit"}, "la": {"latin", "lat"},
	"mi": {"maori", "mri"}, "ml": {"malayalam", "mal"}, "cy": {"welsh", "cym"},
	"sk": {"slovak", "slk"}, "te": {"telugu", "tel"}, "fa": {"persian", "fas"},
	"lv": {"latvian", "lav"}, "bn": {"bengali", "ben"}, "sr": {"serbian", "srp"},
	"az": {"azerbaijani", "aze"}, "sl": {"slovenian", "slv"}, "kn": {"kannada", "kan"},
	"et": {"estonian", "est"}, "mk": {"macedonian", "mkd"}, "br": {"breton", "bre"},
	"eu": {"basque", "eus"}, "is": {"icelandic", "isl"}, "hy": {"armenian", "hye"},
	"ne": {"nepali", "nep"}, "mn": {"mongolian", "mon"}, "bs": {"bosnian", "bos"},
	"kk": {"kazakh", "kaz"}, "sq": {"albanian", "sqi"}, "sw": {"swahili", "swa"},
	"gl": {"galician", "glg"}, "mr": {"marathi", "mar"}, "pa": {"punjabi", "pan"},
	"si": {"sinhala", "sin"}, "km": {"khmer", "khm"}, "sn": {"shona", "sna"},
	"yo": {"yoruba", "yor"}, "so": {"somali", "som"}, "af": {"afrikaans", "afr"},
	"oc": {"occitan", "oci"}, "ka": {"georgian", "kat"}, "be": {"belarusian", "bel"},
	"tg": {"tajik", "tgk"}, "sd": {"sindhi", "snd"}, "gu": {"gujarati", "guj"},
	"am": {"amharic", "amh"}, "yi": {"yiddish", "yid"}, "lo": {"lao", "lao"},
	"uz": {"uzbek", "uzb"}, "fo": {"faroese", "fao"}, "ht": {"haitian creole", "hat"},
	"ps": {"pashto", "pus"}, "tk": {"turkmen", "tuk"}, "nn": {"nynorsk", "nno"},
	"mt": {"maltese", "mlt"}, "sa": {"sanskrit", "san"}, "lb": {"luxembourgish", "ltz"},
	"my": {"myanmar", "mya"}, "bo": {"tibetan", "bod"}, "tl": {"tagalog", "tgl"},
	"mg": {"malagasy", "mlg"}, "as": {"assamese", "asm"}, "tt": {"tatar", "tat"},
	"haw": {"hawaiian", "haw"}, "ln": {"lingala", "lin"}, "ha": {"hausa", "hau"},
	"ba": {"bashkir", "bak"}, "jw": {"javanese", "jav"}, "su": {"sundanese", "sun"},
	"yue": {"cantonese", "yue"},
}

// languageAliases maps alternative language names to codes
var languageAliases = map[string]string{
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

// punctuationLanguages are the languages the punctuation model supports
var punctuationLanguages = map[string]struct{}{
	"en": {}, "fr": {}, "de": {}, "es": {}, "it": {}, "nl": {},
	"pt": {}, "bg": {}, "pl": {}, "cs": {}, "sk": {}, "sl": {},
}

var nameToCode map[string]string

func init() {
	nameToCode = make(map[string]string, len(languages)+len(languageAliases))
	for code, lang := range languages {
		nameToCode[lang.name] = code
	}
	for alias, code := range languageAliases {
		nameToCode[alias] = code
	}
}

// ResolveLanguage normalizes a requested language for the given model.
// An empty result means auto-detect. English-only models (".en") always resolve to "en";
// overridden reports that a different requested language was replaced.
func ResolveLanguage(requested, modelName string) (code string, overridden bool, err error) {
	code = strings.ToLower(strings.TrimSpace(requested))

	if code != "" {
		if _, ok := languages[code]; !ok {
			mapped, ok := nameToCode[code]
			if !ok {
				return "", false, apperrors.UnsupportedLanguage(requested)
			}
			code = mapped
		}
	}

	if strings.HasSuffix(modelName, ".en") && code != "en" {
		return "en", code != "", nil
	}
	return code, false, nil
}

// AlignmentLanguage returns the ISO 639-3 code the aligner expects
func AlignmentLanguage(code string) (string, error) {
	lang, ok := languages[strings.ToLower(code)]
	if !ok {
		return "", apperrors.UnsupportedLanguage(code)
	}
	return lang.iso3, nil
}

// SupportsPunctuation reports whether punctuation restoration is available for code
func SupportsPunctuation(code string) bool {
	_, ok := punctuationLanguages[strings.ToLower(code)]
	return ok
}
