package diagnostics

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// kindLabels holds the localized severity labels shown in rendered
// diagnostics. English is the fallback.
type kindLabels struct {
	Error   string
	Warning string
	Note    string
}

var supportedLocales = []language.Tag{
	language.English,
	language.Russian,
	language.MustParse("be"),
}

var labelSets = []kindLabels{
	{Error: "error", Warning: "warning", Note: "note"},
	{Error: "ошибка", Warning: "предупреждение", Note: "примечание"},
	{Error: "памылка", Warning: "папярэджанне", Note: "заўвага"},
}

var localeMatcher = language.NewMatcher(supportedLocales)

// labelsForLocale picks the label set for a locale string such as
// "ru_RU.UTF-8". Unknown locales fall back to English.
func labelsForLocale(locale string) kindLabels {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")

	tag, err := language.Parse(locale)
	if err != nil {
		return labelSets[0]
	}
	_, index, _ := localeMatcher.Match(tag)
	return labelSets[index]
}

// processLocale reads the locale from the environment, LC_ALL over LANG.
func processLocale() string {
	if lc := os.Getenv("LC_ALL"); lc != "" {
		return lc
	}
	return os.Getenv("LANG")
}
