// Package localedate renders short calendar dates the way a browser's
// toLocaleDateString does for a handful of common locales.
package localedate

import (
	"time"

	"golang.org/x/text/language"
)

var (
	CanadianEnglish = language.MustParse("en-CA")
	CanadianFrench  = language.MustParse("fr-CA")
	BelgianDutch    = language.MustParse("nl-BE")
)

// Supported lists matchable locales; the first entry is the default.
var Supported = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	CanadianEnglish,
	language.German,
	language.French,
	CanadianFrench,
	language.Spanish,
	language.Italian,
	language.Dutch,
	BelgianDutch,
	language.BrazilianPortuguese,
	language.Swedish,
	language.Russian,
	language.Japanese,
	language.Chinese,
	language.Korean,
}

var layouts = map[language.Tag]string{
	language.AmericanEnglish:     "1/2/2006",
	language.BritishEnglish:      "02/01/2006",
	CanadianEnglish:              "2006-01-02",
	language.German:              "2.1.2006",
	language.French:              "02/01/2006",
	CanadianFrench:               "2006-01-02",
	language.Spanish:             "2/1/2006",
	language.Italian:             "2/1/2006",
	language.Dutch:               "2-1-2006",
	BelgianDutch:                 "2/1/2006",
	language.BrazilianPortuguese: "02/01/2006",
	language.Swedish:             "2006-01-02",
	language.Russian:             "02.01.2006",
	language.Japanese:            "2006/1/2",
	language.Chinese:             "2006/1/2",
	language.Korean:              "2006. 1. 2.",
}

var matcher = language.NewMatcher(Supported)

// Default is used when nothing in an Accept-Language header matches.
func Default() language.Tag {
	return Supported[0]
}

// Match picks the best supported locale for an Accept-Language header value.
func Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return Default()
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Default()
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Default()
	}
	return Supported[idx]
}

// FormatShort renders t as the locale's short numeric date.
func FormatShort(t time.Time, tag language.Tag) string {
	layout, ok := layouts[tag]
	if !ok {
		_, idx, conf := matcher.Match(tag)
		if conf == language.No {
			idx = 0
		}
		layout = layouts[Supported[idx]]
	}
	return t.Format(layout)
}

// AddDays moves t by n calendar days, rolling over months and years.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
