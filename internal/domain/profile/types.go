package profile

import "strings"

// Mood is the user's self-reported current mood.
type Mood string

const (
	MoodHappy     Mood = "Happy"
	MoodCalm      Mood = "Calm"
	MoodTired     Mood = "Tired"
	MoodAnxious   Mood = "Anxious"
	MoodEnergetic Mood = "Energetic"
)

// Season is the season driving outfit and recipe suggestions.
type Season string

const (
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
	SeasonWinter Season = "Winter"
)

// MBTI is the user's personality type. OTHER covers the undeclared case.
type MBTI string

const (
	ENFP      MBTI = "ENFP"
	INTJ      MBTI = "INTJ"
	ESFJ      MBTI = "ESFJ"
	INTP      MBTI = "INTP"
	ISFP      MBTI = "ISFP"
	INFJ      MBTI = "INFJ"
	ISTP      MBTI = "ISTP"
	ISTJ      MBTI = "ISTJ"
	ENTP      MBTI = "ENTP"
	ENFJ      MBTI = "ENFJ"
	ESTP      MBTI = "ESTP"
	ESTJ      MBTI = "ESTJ"
	ISFJ      MBTI = "ISFJ"
	ESFP      MBTI = "ESFP"
	ENTJ      MBTI = "ENTJ"
	INFP      MBTI = "INFP"
	MBTIOther MBTI = "OTHER"
)

// BodyTarget is the body area the user wants recommendations to focus on.
type BodyTarget string

const (
	TargetWaist    BodyTarget = "Waist"
	TargetLegs     BodyTarget = "Legs"
	TargetArms     BodyTarget = "Arms"
	TargetFullBody BodyTarget = "Full Body"
)

// Gender selects styling vocabulary and image prompts.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

// BoneStructure is the user's body shape bucket.
type BoneStructure string

const (
	Ectomorph BoneStructure = "Ectomorph"
	Mesomorph BoneStructure = "Mesomorph"
	Endomorph BoneStructure = "Endomorph"
	Balanced  BoneStructure = "Normal"
)

// Locale selects catalog language and quote tables.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleKO Locale = "ko"
)

// Provider identifies a generative AI vendor.
type Provider string

const (
	ProviderGemini Provider = "Gemini"
	ProviderOpenAI Provider = "OpenAI"
)

// Profile is an immutable snapshot of the user's state. It is passed by
// value into every component; nothing downstream mutates caller state.
type Profile struct {
	Name          string        `json:"name"`
	MBTI          MBTI          `json:"mbti"`
	Mood          Mood          `json:"mood"`
	Season        Season        `json:"season"`
	TargetArea    BodyTarget    `json:"targetArea"`
	UseAI         bool          `json:"useAi"`
	Provider      Provider      `json:"aiProvider"`
	Gender        Gender        `json:"gender"`
	BoneStructure BoneStructure `json:"boneStructure"`
	Locale        Locale        `json:"language"`
	Height        int           `json:"height"`
	Weight        int           `json:"weight"`
	Tastes        []string      `json:"tastes"`
}

// Default returns the profile used before the user customizes anything.
func Default() Profile {
	return Profile{
		Name:          "Sarah",
		MBTI:          ENFP,
		Mood:          MoodHappy,
		Season:        SeasonAutumn,
		TargetArea:    TargetWaist,
		UseAI:         true,
		Provider:      ProviderGemini,
		Gender:        GenderFemale,
		BoneStructure: Ectomorph,
		Locale:        LocaleEN,
		Height:        165,
		Weight:        55,
	}
}

// Normalized fills zero or unknown enum values with defaults so any partial
// payload yields a total, scoreable profile.
func (p Profile) Normalized() Profile {
	def := Default()
	if !validMood(p.Mood) {
		p.Mood = def.Mood
	}
	if !validSeason(p.Season) {
		p.Season = def.Season
	}
	if !validMBTI(p.MBTI) {
		p.MBTI = MBTIOther
	}
	if !validTarget(p.TargetArea) {
		p.TargetArea = def.TargetArea
	}
	if p.Gender != GenderFemale && p.Gender != GenderMale {
		p.Gender = def.Gender
	}
	if !validBone(p.BoneStructure) {
		p.BoneStructure = Balanced
	}
	if p.Locale != LocaleEN && p.Locale != LocaleKO {
		p.Locale = LocaleEN
	}
	if p.Provider != ProviderGemini && p.Provider != ProviderOpenAI {
		p.Provider = def.Provider
	}
	tastes := make([]string, 0, len(p.Tastes))
	for _, taste := range p.Tastes {
		if clean := strings.TrimSpace(taste); clean != "" {
			tastes = append(tastes, clean)
		}
	}
	p.Tastes = tastes
	return p
}

func validMood(m Mood) bool {
	switch m {
	case MoodHappy, MoodCalm, MoodTired, MoodAnxious, MoodEnergetic:
		return true
	}
	return false
}

func validSeason(s Season) bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	}
	return false
}

func validMBTI(m MBTI) bool {
	switch m {
	case ENFP, INTJ, ESFJ, INTP, ISFP, INFJ, ISTP, ISTJ,
		ENTP, ENFJ, ESTP, ESTJ, ISFJ, ESFP, ENTJ, INFP, MBTIOther:
		return true
	}
	return false
}

func validTarget(t BodyTarget) bool {
	switch t {
	case TargetWaist, TargetLegs, TargetArms, TargetFullBody:
		return true
	}
	return false
}

func validBone(b BoneStructure) bool {
	switch b {
	case Ectomorph, Mesomorph, Endomorph, Balanced:
		return true
	}
	return false
}
