package services

import (
	"strings"

	"ecom-intel/models"
	"ecom-intel/utils"
)

const (
	// minReviewLen is the shortest review text treated as a real review;
	// anything at or under this is extraction noise.
	minReviewLen = 20
	// prefixKeyLen is the number of leading characters that identify a
	// review for deduplication purposes.
	prefixKeyLen = 100
)

// Deduplicator collapses near-identical records scraped from multiple pages
// of the same product. Identity is the lowercase first 100 characters of the
// review text — a deliberate precision/recall tradeoff, not similarity
// matching.
type Deduplicator struct {
	logger *utils.Logger
}

// NewDeduplicator creates a Deduplicator with the given logger.
func NewDeduplicator(logger *utils.Logger) *Deduplicator {
	return &Deduplicator{logger: logger}
}

// Dedup keeps the first record seen for each prefix key, in encounter
// order. Records with short review text are dropped unconditionally.
// Running Dedup on its own output is a no-op.
func (d *Deduplicator) Dedup(records []*models.ReviewRecord) []*models.ReviewRecord {
	seen := make(map[string]struct{})
	result := make([]*models.ReviewRecord, 0, len(records))

	for _, r := range records {
		text := strings.TrimSpace(r.Text)
		if len(text) <= minReviewLen {
			d.logger.Debug("[dedup] Dropping short record (%d chars) from %s", len(text), r.SourceURL)
			continue
		}

		key := prefixKey(text)
		if _, dup := seen[key]; dup {
			d.logger.Debug("[dedup] Duplicate review skipped: %.40q...", text)
			continue
		}
		seen[key] = struct{}{}

		result = append(result, r)
	}

	d.logger.Info("[dedup] %d → %d reviews (dropped %d)",
		len(records), len(result), len(records)-len(result))
	return result
}

// prefixKey lowercases text and truncates it to the first prefixKeyLen
// characters, counting runes so multibyte text is not split mid-character.
func prefixKey(text string) string {
	key := strings.ToLower(text)
	runes := []rune(key)
	if len(runes) > prefixKeyLen {
		return string(runes[:prefixKeyLen])
	}
	return key
}
