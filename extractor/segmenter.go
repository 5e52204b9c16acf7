package extractor

import (
	"strings"
	"time"

	"ecom-intel/models"
	"ecom-intel/utils"
)

// minLineLen is the shortest prose line worth accumulating; anything
// shorter is markup noise. Rating markers are exempt — "4/5" on its own
// line is a meaningful review boundary.
const minLineLen = 10

// Segmenter recovers discrete review records from a page of unstructured
// markdown. It streams lines, delimits reviews at rating markers, and
// accumulates the prose between boundaries into one record per review.
type Segmenter struct {
	logger *utils.Logger
}

// NewSegmenter creates a Segmenter with the given logger.
func NewSegmenter(logger *utils.Logger) *Segmenter {
	return &Segmenter{logger: logger}
}

// Extract runs one pass over the page's lines and returns the completed
// review records in document order. A page with no recognizable reviews
// yields an empty slice, not an error.
func (s *Segmenter) Extract(page *models.RawPage) []*models.ReviewRecord {
	var records []*models.ReviewRecord
	var buf, ratingToken string

	emit := func(token string) {
		text := strings.TrimSpace(buf)
		if text == "" {
			return
		}
		records = append(records, &models.ReviewRecord{
			Text:         text,
			Rating:       NormalizeRating(token),
			ReviewerName: ExtractReviewer(text),
			ReviewDate:   ExtractDate(text),
			SourceURL:    page.URL,
			ExtractedAt:  time.Now(),
		})
	}

	for _, raw := range strings.Split(page.Content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if token, trailing, ok := MatchRatingMarker(line); ok {
			// A previously accumulated rated review ends here. An unrated
			// buffer is replaced instead: prose seen before the first
			// marker is mostly page chrome.
			if buf != "" && ratingToken != "" {
				emit(ratingToken)
			}
			ratingToken = token
			buf = trailing
			continue
		}

		if len(line) < minLineLen {
			continue
		}

		if buf != "" {
			buf += " " + line
		} else if ratingToken != "" || LooksLikeReview(line) {
			// A bare marker line establishes review context for the prose
			// that follows; otherwise the keyword heuristic decides.
			buf = line
		}
	}

	// Trailing buffer at end of input. When no marker was ever seen the
	// record is still emitted, with no rating — the buffer only exists
	// because it already looked like review prose.
	if buf != "" {
		emit(ratingToken)
	}

	if len(records) > 0 {
		s.logger.Debug("[extractor] %s: %d review(s) segmented", page.URL, len(records))
	}
	return records
}
