package recommend

import (
	"context"

	"github.com/luvit/moodfit/internal/domain/profile"
)

// Ingredient is one recipe component.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Image  string `json:"image"`
	Origin string `json:"origin,omitempty"`
}

// Recipe is a meal suggestion with preparation details.
type Recipe struct {
	ID          string       `json:"id"`
	Tags        []string     `json:"tags"`
	Title       string       `json:"title"`
	Calories    int          `json:"calories"`
	Protein     string       `json:"protein"`
	Time        string       `json:"time"`
	Image       string       `json:"image"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	Badge       string       `json:"badge,omitempty"`
}

// OutfitItem is one piece of clothing inside an outfit.
type OutfitItem struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Outfit is a styled look suggestion.
type Outfit struct {
	ID          string       `json:"id"`
	Tags        []string     `json:"tags"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	ProTip      string       `json:"proTip"`
	Hashtags    []string     `json:"hashtags"`
	Items       []OutfitItem `json:"items"`
}

// Intensity buckets workout difficulty.
type Intensity string

const (
	IntensityLow  Intensity = "Low"
	IntensityMed  Intensity = "Med"
	IntensityHigh Intensity = "High"
)

// Exercise is one movement inside a workout.
type Exercise struct {
	Name        string `json:"name"`
	Reps        string `json:"reps"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Workout is a short targeted exercise routine.
type Workout struct {
	ID        string     `json:"id"`
	Tags      []string   `json:"tags"`
	Title     string     `json:"title"`
	Duration  string     `json:"duration"`
	Intensity Intensity  `json:"intensity"`
	Exercises []Exercise `json:"exercises"`
}

// Quote is a short motivational line.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Result is the immutable recommendation snapshot exchanged with callers
// and persisted to the cache.
type Result struct {
	Quote   Quote   `json:"quote"`
	Recipe  Recipe  `json:"recipe"`
	Outfit  Outfit  `json:"outfit"`
	Workout Workout `json:"workout"`
}

// Catalog is one locale's slice of the tagged content catalog.
type Catalog struct {
	Recipes  []Recipe
	Outfits  []Outfit
	Workouts []Workout
}

// CatalogRepository serves read-only tagged content keyed by locale.
type CatalogRepository interface {
	Catalog(ctx context.Context, locale profile.Locale) (Catalog, error)
}

// CacheStore is the raw single-slot persistence behind the cache.
type CacheStore interface {
	SaveEntry(ctx context.Context, payload []byte) error
	LoadEntry(ctx context.Context) ([]byte, bool, error)
	DeleteEntry(ctx context.Context) error
}

// Compressor downsizes a data-URI image before persistence.
type Compressor interface {
	Recompress(dataURI string) (string, error)
}

// AssetStore offloads compressed image bytes to object storage. Optional;
// a nil store keeps images inline in the cache entry.
type AssetStore interface {
	PutImage(ctx context.Context, key string, data []byte, mimeType string) (string, error)
}
