package services

import (
	"strings"
	"testing"

	"ecom-intel/models"
	"ecom-intel/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger(false) }

func rec(text string) *models.ReviewRecord {
	return &models.ReviewRecord{Text: text, SourceURL: "https://example.com/reviews"}
}

func TestDedupPrefixCollapse(t *testing.T) {
	d := NewDeduplicator(newTestLogger())

	prefix := strings.Repeat("a great product with quality ", 4) // >100 chars
	records := []*models.ReviewRecord{
		rec(prefix + "and it arrived early"),
		rec(prefix + "but the packaging was dented"),
	}

	out := d.Dedup(records)
	if len(out) != 1 {
		t.Fatalf("identical 100-char prefixes should collapse: got %d records, want 1", len(out))
	}
	if !strings.Contains(out[0].Text, "arrived early") {
		t.Errorf("first record in encounter order should win, got %q", out[0].Text)
	}
}

func TestDedupDifferentPrefixesKept(t *testing.T) {
	d := NewDeduplicator(newTestLogger())

	suffix := " and that is everything I have to say about this particular purchase"
	records := []*models.ReviewRecord{
		rec("Wonderful blender, very happy with it" + suffix),
		rec("Terrible blender, very unhappy with it" + suffix),
	}

	out := d.Dedup(records)
	if len(out) != 2 {
		t.Fatalf("identical suffixes must not collapse: got %d records, want 2", len(out))
	}
}

func TestDedupCaseInsensitive(t *testing.T) {
	d := NewDeduplicator(newTestLogger())

	records := []*models.ReviewRecord{
		rec("Great product would buy again from this store"),
		rec("GREAT PRODUCT WOULD BUY AGAIN FROM THIS STORE"),
	}

	out := d.Dedup(records)
	if len(out) != 1 {
		t.Fatalf("case-variant duplicates should collapse: got %d, want 1", len(out))
	}
}

func TestDedupDropsShortRecords(t *testing.T) {
	d := NewDeduplicator(newTestLogger())

	records := []*models.ReviewRecord{
		rec("too short"),
		rec("   tiny padded note    "),
		rec("this one is comfortably longer than the cutoff and survives"),
	}

	out := d.Dedup(records)
	if len(out) != 1 {
		t.Fatalf("short records should be dropped: got %d, want 1", len(out))
	}
}

func TestDedupIdempotent(t *testing.T) {
	d := NewDeduplicator(newTestLogger())

	records := []*models.ReviewRecord{
		rec("first review text that is long enough to survive the cutoff"),
		rec("second review text that is long enough to survive the cutoff"),
		rec("first review text that is long enough to survive the cutoff"),
	}

	once := d.Dedup(records)
	twice := d.Dedup(once)

	if len(twice) != len(once) {
		t.Fatalf("dedup not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("record %d changed identity across passes", i)
		}
	}
}

func TestDedupEmptyInput(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	if out := d.Dedup(nil); len(out) != 0 {
		t.Errorf("expected empty output for nil input, got %d", len(out))
	}
}
