package recommend

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/luvit/moodfit/pkg/errors"
	"github.com/luvit/moodfit/pkg/util"
)

// cacheEntry is the serialized slot payload.
type cacheEntry struct {
	Result  Result    `json:"result"`
	SavedAt time.Time `json:"savedAt"`
}

// Cache is the single-slot recommendation cache. Save recompresses any
// embedded data-URI image before serializing and optionally offloads the
// bytes to object storage; Load discards a corrupted entry instead of
// repairing it.
type Cache struct {
	store      CacheStore
	compressor Compressor
	assets     AssetStore
	now        func() time.Time
	logger     *slog.Logger
}

// NewCache builds the cache. assets may be nil, which keeps images inline.
func NewCache(store CacheStore, compressor Compressor, assets AssetStore, logger *slog.Logger) *Cache {
	return &Cache{
		store:      store,
		compressor: compressor,
		assets:     assets,
		now:        util.NowUTC,
		logger:     logger.With("component", "recommend.cache"),
	}
}

// Save persists the result, most-recent-wins. Failure leaves the caller's
// in-memory result untouched; the error is informational only.
func (c *Cache) Save(ctx context.Context, result Result) error {
	result.Outfit.Image = c.shrink(ctx, "outfit", result.Outfit.Image)
	result.Recipe.Image = c.shrink(ctx, "recipe", result.Recipe.Image)

	payload, err := json.Marshal(cacheEntry{Result: result, SavedAt: c.now()})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeCacheError, "encode cache entry", err)
	}
	if err := c.store.SaveEntry(ctx, payload); err != nil {
		return apperrors.Wrap(apperrors.CodeCacheError, "persist cache entry", err)
	}
	return nil
}

// Load restores the last saved result. A parse failure invalidates the
// slot and reads as absent.
func (c *Cache) Load(ctx context.Context) (Result, bool, error) {
	payload, found, err := c.store.LoadEntry(ctx)
	if err != nil {
		return Result{}, false, apperrors.Wrap(apperrors.CodeCacheError, "read cache entry", err)
	}
	if !found {
		return Result{}, false, nil
	}
	var entry cacheEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		c.logger.Warn("cache entry corrupted, discarding", "error", err)
		_ = c.store.DeleteEntry(ctx)
		return Result{}, false, nil
	}
	return entry.Result, true, nil
}

// Invalidate clears the slot.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.store.DeleteEntry(ctx); err != nil {
		return apperrors.Wrap(apperrors.CodeCacheError, "clear cache entry", err)
	}
	return nil
}

// shrink recompresses a data-URI image and, when an asset store is
// configured, swaps the inline payload for a stored object URL. Remote
// URLs pass through untouched; any failure keeps the original value.
func (c *Cache) shrink(ctx context.Context, kind, image string) string {
	if !strings.HasPrefix(image, "data:image") {
		return image
	}
	compressed, err := c.compressor.Recompress(image)
	if err != nil {
		c.logger.Warn("image recompress failed, storing original", "kind", kind, "error", err)
		compressed = image
	}
	if c.assets == nil {
		return compressed
	}
	mimeType, data, ok := parseDataURI(compressed)
	if !ok {
		return compressed
	}
	key := kind + "/" + uuid.NewString() + extensionFor(mimeType)
	url, err := c.assets.PutImage(ctx, key, data, mimeType)
	if err != nil {
		c.logger.Warn("asset offload failed, keeping image inline", "kind", kind, "error", err)
		return compressed
	}
	return url
}

func parseDataURI(uri string) (mimeType string, data []byte, ok bool) {
	rest, found := strings.CutPrefix(uri, "data:")
	if !found {
		return "", nil, false
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, false
	}
	mimeType = strings.TrimSuffix(meta, ";base64")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return mimeType, decoded, true
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
