package services

import (
	"fmt"
	"strings"

	"ecom-intel/models"
)

// Print renders the analysis as an ANSI report on stdout.
func (a *Analyzer) Print(title string, r *models.AnalysisResult) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 REVIEW ANALYSIS — %s\033[0m\n", truncate(title, 32))
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total reviews  : \033[1m%d\033[0m\n", r.TotalReviews)
	if r.AverageRating > 0 {
		fmt.Printf("  Average rating : \033[1;32m%.2f / 5.0\033[0m (%d rated)\n",
			r.AverageRating, r.Ratings.TotalRatings)
	} else {
		fmt.Printf("  Average rating : no rating data\n")
	}
	fmt.Println()

	// Sentiment
	fmt.Printf("\033[1;33m  Sentiment Breakdown\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printSentimentBar("Positive", r.Sentiment.Positive, "32")
	printSentimentBar("Neutral", r.Sentiment.Neutral, "33")
	printSentimentBar("Negative", r.Sentiment.Negative, "31")
	fmt.Println()

	// Star histogram
	fmt.Printf("\033[1;33m  Rating Distribution\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.Ratings.TotalRatings == 0 {
		fmt.Printf("  No rated reviews\n")
	} else {
		stars := []struct {
			label string
			pct   float64
		}{
			{"5★", r.Ratings.FiveStar},
			{"4★", r.Ratings.FourStar},
			{"3★", r.Ratings.ThreeStar},
			{"2★", r.Ratings.TwoStar},
			{"1★", r.Ratings.OneStar},
		}
		for _, s := range stars {
			bar := strings.Repeat("█", int(s.pct/4))
			fmt.Printf("  %s %-26s %5.1f%%\n", s.label, bar, s.pct)
		}
	}
	fmt.Println()

	printList("  💡 Key Insights", r.KeyInsights, "No key insights available")
	printList("  ✅ What Customers Love", r.Pros, "No positive feedback identified")
	printList("  ⚠️  Common Complaints", r.Cons, "No negative feedback identified")
	printList("  🎯 Recommendations", r.Recommendations, "No recommendations available")

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func printSentimentBar(label string, pct float64, color string) {
	bar := strings.Repeat("█", int(pct/4))
	fmt.Printf("  %-8s \033[1;%sm%-26s\033[0m %5.1f%%\n", label, color, bar, pct)
}

func printList(header string, items []string, emptyMsg string) {
	thin := strings.Repeat("─", 54)
	fmt.Printf("\033[1;33m%s\033[0m\n", header)
	fmt.Printf("  %s\n", thin)
	if len(items) == 0 {
		fmt.Printf("  %s\n", emptyMsg)
	} else {
		for _, item := range items {
			fmt.Printf("  • %s\n", item)
		}
	}
	fmt.Println()
}

// Summary renders a human-readable markdown summary of the analysis,
// suitable for saving alongside the stored result.
func (a *Analyzer) Summary(title string, r *models.AnalysisResult) string {
	if r.TotalReviews == 0 {
		return fmt.Sprintf("No reviews found for %s.", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Product Review Summary: %s\n\n", title)
	fmt.Fprintf(&b, "**Overall Rating:** %.2f/5.0 (%d reviews)\n\n", r.AverageRating, r.TotalReviews)
	fmt.Fprintf(&b, "**Sentiment Breakdown:**\n")
	fmt.Fprintf(&b, "- Positive: %.1f%%\n", r.Sentiment.Positive)
	fmt.Fprintf(&b, "- Neutral: %.1f%%\n", r.Sentiment.Neutral)
	fmt.Fprintf(&b, "- Negative: %.1f%%\n", r.Sentiment.Negative)

	writeSection(&b, "Key Insights", r.KeyInsights, 5)
	writeSection(&b, "What Customers Love", r.Pros, 5)
	writeSection(&b, "Common Complaints", r.Cons, 5)
	writeSection(&b, "Recommendations", r.Recommendations, 3)

	return b.String()
}

func writeSection(b *strings.Builder, header string, items []string, max int) {
	if len(items) == 0 {
		return
	}
	if len(items) > max {
		items = items[:max]
	}
	fmt.Fprintf(b, "\n**%s:**\n", header)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
