package localedate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestFormatShort(t *testing.T) {
	day := date(2024, time.January, 31)

	tests := []struct {
		tag  language.Tag
		want string
	}{
		{language.AmericanEnglish, "1/31/2024"},
		{language.BritishEnglish, "31/01/2024"},
		{CanadianEnglish, "2024-01-31"},
		{language.German, "31.1.2024"},
		{language.French, "31/01/2024"},
		{CanadianFrench, "2024-01-31"},
		{language.Dutch, "31-1-2024"},
		{BelgianDutch, "31/1/2024"},
		{language.Japanese, "2024/1/31"},
		{language.Korean, "2024. 1. 31."},
		{language.Russian, "31.01.2024"},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatShort(day, tt.tag))
		})
	}
}

func TestFormatShortFallsBackForUnlistedTags(t *testing.T) {
	day := date(2024, time.March, 5)

	assert.Equal(t, "5.3.2024", FormatShort(day, language.MustParse("de-AT")))
	assert.Equal(t, "3/5/2024", FormatShort(day, language.MustParse("tlh")))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{"", language.AmericanEnglish},
		{"garbage;;q=x", language.AmericanEnglish},
		{"en-GB,en;q=0.9", language.BritishEnglish},
		{"de-DE,de;q=0.9,en;q=0.5", language.German},
		{"pt-BR", language.BrazilianPortuguese},
		{"fr-CA,fr;q=0.8", CanadianFrench},
		{"fr-FR", language.French},
		{"nl-BE", BelgianDutch},
		{"nl-NL", language.Dutch},
		{"ja", language.Japanese},
		{"tlh", language.AmericanEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.header))
		})
	}
}

func TestAddDaysRollsOver(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"month", date(2024, time.January, 31), date(2024, time.February, 1)},
		{"leap day", date(2024, time.February, 28), date(2024, time.February, 29)},
		{"after leap day", date(2024, time.February, 29), date(2024, time.March, 1)},
		{"year", date(2023, time.December, 31), date(2024, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddDays(tt.in, 1))
		})
	}
}
