package recommend

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/luvit/moodfit/internal/domain/profile"
)

// envelope is the untrusted partial shape a provider may return. Every
// field is raw: nothing from the wire is assumed to match the requested
// schema until it passes through Normalize.
type envelope struct {
	Quote   json.RawMessage `json:"quote"`
	Recipe  json.RawMessage `json:"recipe"`
	Outfit  json.RawMessage `json:"outfit"`
	Workout json.RawMessage `json:"workout"`
}

// decodeEnvelope strips markdown fences and decodes whatever arrives. A
// malformed document decodes to the empty envelope; Normalize repairs the
// rest.
func decodeEnvelope(raw []byte) envelope {
	var env envelope
	cleaned := stripFences(string(raw))
	if cleaned == "" {
		return env
	}
	_ = json.Unmarshal([]byte(cleaned), &env)
	return env
}

// mergeEnvelopes overlays b's populated fields onto a. Used to combine the
// lifestyle and style responses into one document.
func mergeEnvelopes(a, b envelope) envelope {
	if present(b.Quote) {
		a.Quote = b.Quote
	}
	if present(b.Recipe) {
		a.Recipe = b.Recipe
	}
	if present(b.Outfit) {
		a.Outfit = b.Outfit
	}
	if present(b.Workout) {
		a.Workout = b.Workout
	}
	return a
}

func present(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null"
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Normalize repairs an untrusted provider document into a structurally
// valid Result. It is total: any input, including the empty envelope,
// yields a fully populated snapshot. Identifiers are always assigned
// fresh; provider-supplied ids are never trusted.
func Normalize(env envelope, p profile.Profile) Result {
	return Result{
		Quote:   coerceQuote(env.Quote),
		Recipe:  normalizeRecipe(env.Recipe, recipeDefaults{title: "Healthy Meal", steps: defaultSteps, idPrefix: "ai-recipe", tags: []string{string(p.Mood), string(p.Season)}}),
		Outfit:  normalizeOutfit(env.Outfit, p),
		Workout: normalizeWorkout(env.Workout, p),
	}
}

// NormalizeRecipe repairs a bare recipe document from the fridge flow.
func NormalizeRecipe(raw []byte, p profile.Profile) Recipe {
	cleaned := stripFences(string(raw))
	return normalizeRecipe(json.RawMessage(cleaned), recipeDefaults{
		title:    "Delicious Meal",
		steps:    defaultFridgeSteps,
		idPrefix: "ai-fridge",
		tags:     []string{"AI_FRIDGE"},
	})
}

var (
	defaultSteps       = []string{"Prepare.", "Cook.", "Enjoy."}
	defaultFridgeSteps = []string{"Mix ingredients.", "Cook thoroughly.", "Serve."}

	placeholderIngredients = []Ingredient{
		{Name: "Main Ingredient", Amount: "1 serving", Image: ""},
		{Name: "Fresh Veggies", Amount: "1 cup", Image: ""},
		{Name: "Signature Sauce", Amount: "2 tbsp", Image: ""},
	}
	placeholderOutfitItems = []OutfitItem{
		{Name: "Statement Top", Type: "Top"},
		{Name: "Tailored Bottoms", Type: "Pants"},
		{Name: "Comfort Shoes", Type: "Footwear"},
		{Name: "Minimalist Bag", Type: "Accessory"},
	}
)

func coerceQuote(raw json.RawMessage) Quote {
	fallback := Quote{Text: "Stay positive!", Author: "Luvit AI"}
	if !present(raw) {
		return fallback
	}
	var wire struct {
		Text   string `json:"text"`
		Author string `json:"author"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil || strings.TrimSpace(wire.Text) == "" {
		return fallback
	}
	if strings.TrimSpace(wire.Author) == "" {
		wire.Author = fallback.Author
	}
	return Quote{Text: wire.Text, Author: wire.Author}
}

type recipeDefaults struct {
	title    string
	steps    []string
	idPrefix string
	tags     []string
}

func normalizeRecipe(raw json.RawMessage, def recipeDefaults) Recipe {
	var wire struct {
		Title       string          `json:"title"`
		Calories    json.RawMessage `json:"calories"`
		Protein     string          `json:"protein"`
		Time        string          `json:"time"`
		Badge       string          `json:"badge"`
		Ingredients json.RawMessage `json:"ingredients"`
		Steps       json.RawMessage `json:"steps"`
	}
	if present(raw) {
		_ = json.Unmarshal(raw, &wire)
	}

	steps := coerceStringList(wire.Steps)
	if len(steps) == 0 {
		steps = append([]string(nil), def.steps...)
	}

	return Recipe{
		ID:          freshID(def.idPrefix),
		Tags:        append([]string(nil), def.tags...),
		Title:       defaultString(wire.Title, def.title),
		Calories:    coerceInt(wire.Calories),
		Protein:     wire.Protein,
		Time:        defaultString(wire.Time, "20 min"),
		Image:       placeholderRecipeImage,
		Ingredients: coerceIngredients(wire.Ingredients),
		Steps:       steps,
		Badge:       defaultString(wire.Badge, "Match"),
	}
}

func normalizeOutfit(raw json.RawMessage, p profile.Profile) Outfit {
	var wire struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		ProTip      string          `json:"proTip"`
		Hashtags    json.RawMessage `json:"hashtags"`
		Items       json.RawMessage `json:"items"`
	}
	if present(raw) {
		_ = json.Unmarshal(raw, &wire)
	}

	hashtags := coerceStringList(wire.Hashtags)
	if len(hashtags) == 0 {
		hashtags = []string{"#OOTD", "#" + string(p.Season)}
	}

	return Outfit{
		ID:          freshID("ai-outfit"),
		Tags:        []string{string(p.Season), string(p.TargetArea)},
		Title:       defaultString(wire.Title, "Stylish Outfit"),
		Description: wire.Description,
		Image:       placeholderOutfitImage,
		ProTip:      wire.ProTip,
		Hashtags:    hashtags,
		Items:       coerceOutfitItems(wire.Items),
	}
}

func normalizeWorkout(raw json.RawMessage, p profile.Profile) Workout {
	var wire struct {
		Title     string          `json:"title"`
		Duration  string          `json:"duration"`
		Intensity string          `json:"intensity"`
		Exercises json.RawMessage `json:"exercises"`
	}
	if present(raw) {
		_ = json.Unmarshal(raw, &wire)
	}

	return Workout{
		ID:        freshID("ai-workout"),
		Tags:      []string{string(p.TargetArea)},
		Title:     defaultString(wire.Title, "Targeted Routine"),
		Duration:  defaultString(wire.Duration, "10 Mins"),
		Intensity: coerceIntensity(wire.Intensity),
		Exercises: coerceExercises(wire.Exercises),
	}
}

// coerceIngredients accepts an ordered list of objects or bare strings.
// Anything else yields the fixed 3-item generic placeholder list. Entry
// images are always reset; a bare string becomes {name, "", ""}.
func coerceIngredients(raw json.RawMessage) []Ingredient {
	entries, ok := rawList(raw)
	if !ok || len(entries) == 0 {
		return append([]Ingredient(nil), placeholderIngredients...)
	}
	out := make([]Ingredient, 0, len(entries))
	for _, entry := range entries {
		var name string
		if err := json.Unmarshal(entry, &name); err == nil {
			out = append(out, Ingredient{Name: name, Amount: "", Image: ""})
			continue
		}
		var wire struct {
			Name   string `json:"name"`
			Amount string `json:"amount"`
		}
		if err := json.Unmarshal(entry, &wire); err != nil {
			continue
		}
		out = append(out, Ingredient{
			Name:   defaultString(wire.Name, "Ingredient"),
			Amount: wire.Amount,
			Image:  "",
		})
	}
	if len(out) == 0 {
		return append([]Ingredient(nil), placeholderIngredients...)
	}
	return out
}

// coerceOutfitItems accepts an ordered list of {name,type} objects.
// Anything else yields the fixed 4-item generic placeholder list.
func coerceOutfitItems(raw json.RawMessage) []OutfitItem {
	entries, ok := rawList(raw)
	if !ok || len(entries) == 0 {
		return append([]OutfitItem(nil), placeholderOutfitItems...)
	}
	out := make([]OutfitItem, 0, len(entries))
	for _, entry := range entries {
		var name string
		if err := json.Unmarshal(entry, &name); err == nil {
			out = append(out, OutfitItem{Name: defaultString(name, "Item"), Type: "Clothing"})
			continue
		}
		var wire struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if err := json.Unmarshal(entry, &wire); err != nil {
			continue
		}
		out = append(out, OutfitItem{
			Name: defaultString(wire.Name, "Item"),
			Type: defaultString(wire.Type, "Clothing"),
		})
	}
	if len(out) == 0 {
		return append([]OutfitItem(nil), placeholderOutfitItems...)
	}
	return out
}

func coerceExercises(raw json.RawMessage) []Exercise {
	entries, ok := rawList(raw)
	if !ok {
		return []Exercise{}
	}
	out := make([]Exercise, 0, len(entries))
	for _, entry := range entries {
		var wire struct {
			Name        string `json:"name"`
			Reps        string `json:"reps"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(entry, &wire); err != nil {
			continue
		}
		out = append(out, Exercise{
			Name:        wire.Name,
			Reps:        wire.Reps,
			Description: wire.Description,
			Image:       placeholderWorkoutImage,
		})
	}
	return out
}

// coerceStringList accepts a JSON array (keeping string elements), or a
// single bare string. Anything else yields nil.
func coerceStringList(raw json.RawMessage) []string {
	if !present(raw) {
		return nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			return nil
		}
		return []string{single}
	}
	entries, ok := rawList(raw)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func coerceIntensity(raw string) Intensity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return IntensityLow
	case "high":
		return IntensityHigh
	case "med", "medium":
		return IntensityMed
	default:
		return IntensityMed
	}
}

func coerceInt(raw json.RawMessage) int {
	if !present(raw) {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var parsed float64
		if _, scanErr := fmt.Sscanf(strings.TrimSpace(s), "%f", &parsed); scanErr == nil {
			return int(parsed)
		}
	}
	return 0
}

func rawList(raw json.RawMessage) ([]json.RawMessage, bool) {
	if !present(raw) {
		return nil, false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func freshID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
