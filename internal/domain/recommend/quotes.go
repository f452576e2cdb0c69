package recommend

import "github.com/luvit/moodfit/internal/domain/profile"

const quoteAuthor = "Fit & Mood Guide"

// Localized quote tables, keyed first by MBTI, then by mood, then the
// locale default.
var quoteTables = map[profile.Locale]map[string]string{
	profile.LocaleEN: {
		string(profile.ENFP):      "Creativity is intelligence having fun.",
		string(profile.INTJ):      "Efficiency is the soul of success.",
		string(profile.MoodHappy): "Keep your face always toward the sunshine.",
		"default":                 "Your only limit is your mind.",
	},
	profile.LocaleKO: {
		string(profile.ENFP):      "창의성은 지능이 즐거워하는 것입니다.",
		string(profile.INTJ):      "효율성은 성공의 영혼입니다.",
		string(profile.MoodHappy): "항상 햇살을 향해 얼굴을 드세요.",
		"default":                 "당신의 유일한 한계는 당신의 마음뿐입니다.",
	},
}

func localQuote(p profile.Profile) Quote {
	table, ok := quoteTables[p.Locale]
	if !ok {
		table = quoteTables[profile.LocaleEN]
	}
	text, ok := table[string(p.MBTI)]
	if !ok {
		text, ok = table[string(p.Mood)]
	}
	if !ok {
		text = table["default"]
	}
	return Quote{Text: text, Author: quoteAuthor}
}
