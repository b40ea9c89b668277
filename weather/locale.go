package weather

import (
	"strings"
	"sync"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// DefaultLocale formats dates when no language is configured or none matches.
const DefaultLocale = monday.LocaleEnUS

// dateLocales are the month name locales forecast dates can be rendered in.
// The first entry is the matcher fallback.
var dateLocales = []monday.Locale{
	monday.LocaleEnUS,
	monday.LocaleRuRU,
	monday.LocaleUkUA,
	monday.LocaleDeDE,
	monday.LocaleFrFR,
	monday.LocaleEsES,
	monday.LocaleItIT,
	monday.LocalePtBR,
	monday.LocaleNlNL,
	monday.LocaleFiFI,
	monday.LocaleJaJP,
	monday.LocaleZhCN,
}

var localeMatcher = sync.OnceValue(func() language.Matcher {
	tags := make([]language.Tag, len(dateLocales))
	for i, l := range dateLocales {
		tags[i] = language.Make(strings.ReplaceAll(string(l), "_", "-"))
	}
	return language.NewMatcher(tags)
})

// LocaleFor picks the date locale closest to a language tag such as "ru" or "de-AT".
func LocaleFor(lang string) monday.Locale {
	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultLocale
	}
	_, index, confidence := localeMatcher().Match(tag)
	if confidence == language.No {
		return DefaultLocale
	}
	return dateLocales[index]
}
