package recommend

import (
	"fmt"
	"strings"

	"github.com/luvit/moodfit/internal/domain/profile"
)

// Fixed placeholder assets substituted when image generation fails or is
// skipped.
const (
	placeholderRecipeImage  = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=1024"
	placeholderOutfitImage  = "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?q=80&w=1024"
	placeholderWorkoutImage = "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?q=80&w=1024"
)

// styleGuide maps each body shape to fashion guidance embedded into the
// style prompt. Total over the enum, with a defined default arm.
func styleGuide(bone profile.BoneStructure, gender profile.Gender) string {
	g := "men"
	if gender == profile.GenderFemale {
		g = "women"
	}
	switch bone {
	case profile.Ectomorph:
		return fmt.Sprintf("Style guide for slim/lean %s: Use layering to add visual bulk. Prefer horizontal stripes, chunky knits, cargo pants, oversized silhouettes, puffer jackets, wide-leg trousers. Avoid overly tight or clingy fabrics.", g)
	case profile.Endomorph:
		return fmt.Sprintf("Style guide for full-figured/plus-size %s: Use vertical lines and monochromatic looks to elongate. Prefer A-line cuts, wrap styles, structured blazers, dark wash denim, flowy midi skirts, empire waist. Avoid overly baggy or shapeless pieces.", g)
	case profile.Mesomorph:
		return fmt.Sprintf("Style guide for athletic/muscular %s: Highlight the physique with well-fitted pieces. Prefer fitted tees, slim-cut chinos, athletic wear, bomber jackets, tailored suits, compression-style tops. Avoid overly boxy or shapeless cuts.", g)
	default:
		return fmt.Sprintf("Style guide for balanced body type %s: Most silhouettes work well. Experiment freely with proportions, mixing fitted and relaxed pieces.", g)
	}
}

// visualDescriptor maps each body shape to the phrase used in image
// prompts so the generated model matches the user's build.
func visualDescriptor(bone profile.BoneStructure) string {
	switch bone {
	case profile.Ectomorph:
		return "slim, slender, lean body type, long limbs, narrow shoulders, elegant posture, tall fashion model physique"
	case profile.Endomorph:
		return "curvy, full-figured, plus-size body, rounder silhouette, soft curves, body-positive fashion model, wider hips and shoulders"
	case profile.Mesomorph:
		return "athletic, muscular, broad shoulders, defined physique, toned body, strong posture, fit sports model"
	default:
		return "average build, natural healthy body type, balanced proportions"
	}
}

func languageName(l profile.Locale) string {
	if l == profile.LocaleKO {
		return "Korean"
	}
	return "English"
}

func genderTerm(g profile.Gender) string {
	if g == profile.GenderFemale {
		return "Woman"
	}
	return "Man"
}

func systemInstruction(p profile.Profile) string {
	return fmt.Sprintf("You are a hyper-personalized lifestyle coach. Output valid JSON only. CRITICAL: All text content (titles, descriptions, steps, advice) MUST be written in %s. Do not use English unless it is a proper noun.", languageName(p.Locale))
}

// contextPrompt describes the profile. The variation seed biases the
// provider toward non-repeating output across refreshes; it carries no
// internal meaning.
func contextPrompt(p profile.Profile, seed int) string {
	return fmt.Sprintf(`Profile:
- Gender: %s
- Body Type: %s
- Height: %dcm, Weight: %dkg
- MBTI: %s (personality affects style preference)
- Current Mood: %s
- Season: %s
- Target Area: %s
- Taste Preferences: %s
- Variation seed: %d`,
		p.Gender, p.BoneStructure, p.Height, p.Weight, p.MBTI,
		p.Mood, p.Season, p.TargetArea, strings.Join(p.Tastes, ", "), seed)
}

func lifestylePrompt(p profile.Profile, seed int) string {
	return fmt.Sprintf(`%s
Task: Generate Quote, Recipe, and Workout (NO OUTFIT).

Recipe Constraints:
1. "time": MUST be a string like "15 min". DO NOT OMIT.
2. "ingredients": Must have at least 4 items.

Workout Constraints:
1. 3 Specific exercises for '%s'.`, contextPrompt(p, seed), p.TargetArea)
}

func stylePrompt(p profile.Profile, seed int) string {
	return fmt.Sprintf(`%s
Task: Generate a UNIQUE and CREATIVE Fashion Outfit for %s season.

IMPORTANT DIVERSITY RULES:
- This must be a COMPLETELY DIFFERENT outfit style from generic recommendations.
- The variation seed is %d — use this to generate a unique combination.
- Do NOT suggest basic/generic outfits like "white t-shirt + jeans".
- Be specific with colors, materials, and brands/styles (e.g., "Camel wool overcoat", "Burgundy corduroy trousers").

Body Type Styling Guide:
%s

Outfit Constraints:
1. "items": MUST be an array of at least 5 objects with specific item names (e.g., "Olive green cargo pants", not just "pants").
2. DO NOT return a simple string description for items. It MUST be a JSON array.
3. "description": Explain specifically WHY each piece works for a %s body type.
4. "title": Must be a creative outfit name reflecting the season and body type (e.g., "Autumn Layered Streetwear for Athletic Build").`,
		contextPrompt(p, seed), p.Season, seed, styleGuide(p.BoneStructure, p.Gender), p.BoneStructure)
}

func fridgePrompt(ingredients string, p profile.Profile) string {
	return fmt.Sprintf(`User Ingredients: %s. User Preferences: %s.
Goal: Create a healthy recipe.
Output JSON: { "title": "string", "calories": number, "protein": "string", "time": "15 min", "badge": "string", "ingredients": [{"name": "string", "amount": "string"}], "steps": ["string"] }
ENSURE "time" field is present (e.g., "20 min").`, ingredients, strings.Join(p.Tastes, ", "))
}

func fridgeSystemInstruction(p profile.Profile) string {
	return fmt.Sprintf("You are a creative chef. Return JSON only. IMPORTANT: Output JSON values in %s language.", languageName(p.Locale))
}

func outfitImagePrompt(outfit Outfit, p profile.Profile) string {
	names := make([]string, 0, len(outfit.Items))
	for _, item := range outfit.Items {
		name := item.Name
		if name == "" {
			name = "clothes"
		}
		names = append(names, name)
	}
	return fmt.Sprintf("Fashion photography, full body shot of a %s with %s wearing %s. Outfit items: %s. Season: %s. The body type must be clearly visible and realistic. Clean studio background, high quality editorial fashion photo, full body visible from head to toe.",
		genderTerm(p.Gender), visualDescriptor(p.BoneStructure), outfit.Title, strings.Join(names, ", "), p.Season)
}

func recipeImagePrompt(recipe Recipe) string {
	return fmt.Sprintf("Professional food photography, overhead shot of %s. Ingredients: %s. Studio lighting, appetizing, high detail.",
		recipe.Title, strings.Join(leadIngredientNames(recipe), ", "))
}

func fridgeImagePrompt(recipe Recipe) string {
	return fmt.Sprintf("Professional food photography, overhead shot of %s. Ingredients: %s. Studio lighting, 4k.",
		recipe.Title, strings.Join(leadIngredientNames(recipe), ", "))
}

func leadIngredientNames(recipe Recipe) []string {
	names := make([]string, 0, 3)
	for _, ing := range recipe.Ingredients {
		if len(names) == 3 {
			break
		}
		name := ing.Name
		if name == "" {
			name = "food"
		}
		names = append(names, name)
	}
	return names
}
