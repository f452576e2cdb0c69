package recommend

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luvit/moodfit/internal/domain/profile"
)

func TestNormalizeEmptyEnvelopeIsTotal(t *testing.T) {
	p := profile.Default()
	result := Normalize(envelope{}, p)

	require.Equal(t, "Stay positive!", result.Quote.Text)
	require.Equal(t, "Luvit AI", result.Quote.Author)

	require.Equal(t, "Healthy Meal", result.Recipe.Title)
	require.Equal(t, "20 min", result.Recipe.Time)
	require.Equal(t, "Match", result.Recipe.Badge)
	require.Equal(t, []string{"Prepare.", "Cook.", "Enjoy."}, result.Recipe.Steps)
	require.Len(t, result.Recipe.Ingredients, 3)
	require.Equal(t, "Main Ingredient", result.Recipe.Ingredients[0].Name)
	require.Equal(t, "1 serving", result.Recipe.Ingredients[0].Amount)
	require.Equal(t, placeholderRecipeImage, result.Recipe.Image)
	require.True(t, strings.HasPrefix(result.Recipe.ID, "ai-recipe-"))

	require.Equal(t, "Stylish Outfit", result.Outfit.Title)
	require.Equal(t, []string{"#OOTD", "#Autumn"}, result.Outfit.Hashtags)
	require.Len(t, result.Outfit.Items, 4)
	require.Equal(t, "Statement Top", result.Outfit.Items[0].Name)
	require.Equal(t, placeholderOutfitImage, result.Outfit.Image)

	require.Equal(t, "Targeted Routine", result.Workout.Title)
	require.Equal(t, IntensityMed, result.Workout.Intensity)
	require.NotNil(t, result.Workout.Exercises)
	require.Empty(t, result.Workout.Exercises)
}

func TestNormalizeAssignsFreshIDs(t *testing.T) {
	p := profile.Default()
	env := envelope{Recipe: json.RawMessage(`{"id":"model-made-this-up","title":"Soup"}`)}

	first := Normalize(env, p)
	second := Normalize(env, p)

	require.NotEqual(t, "model-made-this-up", first.Recipe.ID)
	require.NotEqual(t, first.Recipe.ID, second.Recipe.ID)
	require.NotEqual(t, first.Outfit.ID, second.Outfit.ID)
	require.NotEqual(t, first.Workout.ID, second.Workout.ID)
}

func TestDecodeEnvelopeStripsFences(t *testing.T) {
	raw := []byte("```json\n{\"quote\":{\"text\":\"Shine.\",\"author\":\"Maya\"}}\n```")
	env := decodeEnvelope(raw)
	quote := coerceQuote(env.Quote)
	require.Equal(t, "Shine.", quote.Text)
	require.Equal(t, "Maya", quote.Author)
}

func TestDecodeEnvelopeMalformedIsEmpty(t *testing.T) {
	env := decodeEnvelope([]byte(`{"quote": {"text": "unterminated`))
	require.False(t, present(env.Quote))
	require.False(t, present(env.Recipe))
}

func TestMergeEnvelopesOverlaysPopulatedFields(t *testing.T) {
	lifestyle := decodeEnvelope([]byte(`{"quote":{"text":"a"},"recipe":{"title":"b"},"workout":{"title":"c"}}`))
	style := decodeEnvelope([]byte(`{"outfit":{"title":"d"},"recipe":null}`))

	merged := mergeEnvelopes(lifestyle, style)
	require.True(t, present(merged.Quote))
	require.True(t, present(merged.Recipe), "null in the overlay must not erase the base field")
	require.True(t, present(merged.Outfit))
	require.True(t, present(merged.Workout))
}

func TestCoerceIngredientsBareStrings(t *testing.T) {
	got := coerceIngredients(json.RawMessage(`["Chicken", "Rice"]`))
	require.Equal(t, []Ingredient{
		{Name: "Chicken", Amount: "", Image: ""},
		{Name: "Rice", Amount: "", Image: ""},
	}, got)
}

func TestCoerceIngredientsObjectsResetImages(t *testing.T) {
	got := coerceIngredients(json.RawMessage(`[{"name":"Tofu","amount":"200g","image":"http://evil"},{"amount":"1 cup"}]`))
	require.Equal(t, []Ingredient{
		{Name: "Tofu", Amount: "200g", Image: ""},
		{Name: "Ingredient", Amount: "1 cup", Image: ""},
	}, got)
}

func TestCoerceIngredientsFallsBackToPlaceholders(t *testing.T) {
	for _, raw := range []string{``, `null`, `"not a list"`, `[]`, `[42]`} {
		got := coerceIngredients(json.RawMessage(raw))
		require.Len(t, got, 3, "input %q", raw)
		require.Equal(t, "Signature Sauce", got[2].Name)
	}
}

func TestCoerceOutfitItems(t *testing.T) {
	got := coerceOutfitItems(json.RawMessage(`["White Tee",{"name":"Denim Jacket","type":"Outerwear"},{"type":"Shoes"}]`))
	require.Equal(t, []OutfitItem{
		{Name: "White Tee", Type: "Clothing"},
		{Name: "Denim Jacket", Type: "Outerwear"},
		{Name: "Item", Type: "Shoes"},
	}, got)

	got = coerceOutfitItems(json.RawMessage(`{}`))
	require.Len(t, got, 4)
	require.Equal(t, "Minimalist Bag", got[3].Name)
}

func TestCoerceExercisesAlwaysGetPlaceholderImage(t *testing.T) {
	got := coerceExercises(json.RawMessage(`[{"name":"Plank","reps":"3x45s","image":"data:image/png;base64,xx"}]`))
	require.Len(t, got, 1)
	require.Equal(t, "Plank", got[0].Name)
	require.Equal(t, placeholderWorkoutImage, got[0].Image)
}

func TestCoerceStringListAcceptsSingleString(t *testing.T) {
	require.Equal(t, []string{"#Cozy"}, coerceStringList(json.RawMessage(`"#Cozy"`)))
	require.Equal(t, []string{"a", "b"}, coerceStringList(json.RawMessage(`["a", 7, "b"]`)))
	require.Nil(t, coerceStringList(json.RawMessage(`{"not":"a list"}`)))
	require.Nil(t, coerceStringList(json.RawMessage(`""`)))
}

func TestCoerceIntensity(t *testing.T) {
	require.Equal(t, IntensityLow, coerceIntensity("low"))
	require.Equal(t, IntensityLow, coerceIntensity(" LOW "))
	require.Equal(t, IntensityHigh, coerceIntensity("High"))
	require.Equal(t, IntensityMed, coerceIntensity("medium"))
	require.Equal(t, IntensityMed, coerceIntensity("extreme"))
	require.Equal(t, IntensityMed, coerceIntensity(""))
}

func TestCoerceInt(t *testing.T) {
	require.Equal(t, 420, coerceInt(json.RawMessage(`420`)))
	require.Equal(t, 420, coerceInt(json.RawMessage(`"420"`)))
	require.Equal(t, 420, coerceInt(json.RawMessage(`"420 kcal"`)))
	require.Equal(t, 0, coerceInt(json.RawMessage(`"plenty"`)))
	require.Equal(t, 0, coerceInt(json.RawMessage(`null`)))
}

func TestNormalizeRecipeFridgeVariant(t *testing.T) {
	p := profile.Default()

	recipe := NormalizeRecipe([]byte("```json\n{\"title\":\"Fridge Tacos\",\"calories\":\"380\"}\n```"), p)
	require.Equal(t, "Fridge Tacos", recipe.Title)
	require.Equal(t, 380, recipe.Calories)
	require.Equal(t, []string{"AI_FRIDGE"}, recipe.Tags)
	require.True(t, strings.HasPrefix(recipe.ID, "ai-fridge-"))

	recipe = NormalizeRecipe([]byte(`not json at all`), p)
	require.Equal(t, "Delicious Meal", recipe.Title)
	require.Equal(t, []string{"Mix ingredients.", "Cook thoroughly.", "Serve."}, recipe.Steps)
}

func TestNormalizeBareRecipeTitleGetsPlaceholders(t *testing.T) {
	p := profile.Default()
	env := decodeEnvelope([]byte(`{"recipe": {"title": "Tacos"}}`))

	recipe := Normalize(env, p).Recipe
	require.Equal(t, "Tacos", recipe.Title)
	require.Equal(t, "20 min", recipe.Time)
	require.Equal(t, []string{"Prepare.", "Cook.", "Enjoy."}, recipe.Steps)
	require.Len(t, recipe.Ingredients, 3)
	require.Equal(t, placeholderIngredients, recipe.Ingredients)
}

func TestNormalizePartialDocumentKeepsGoodFields(t *testing.T) {
	p := profile.Default()
	env := decodeEnvelope([]byte(`{
		"recipe": {"title": "Citrus Salmon", "calories": 520, "steps": ["Sear.", "Plate."]},
		"workout": {"title": "Core Circuit", "intensity": "high", "exercises": [{"name": "Crunch", "reps": "3x15"}]}
	}`))

	result := Normalize(env, p)
	require.Equal(t, "Citrus Salmon", result.Recipe.Title)
	require.Equal(t, 520, result.Recipe.Calories)
	require.Equal(t, []string{"Sear.", "Plate."}, result.Recipe.Steps)
	require.Equal(t, IntensityHigh, result.Workout.Intensity)
	require.Len(t, result.Workout.Exercises, 1)
	// Absent sections still come back whole.
	require.Equal(t, "Stylish Outfit", result.Outfit.Title)
	require.Equal(t, "Stay positive!", result.Quote.Text)
}
