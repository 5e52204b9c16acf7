package scraper

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var amazonDPRegexp = regexp.MustCompile(`/dp/([A-Z0-9]+)`)

// ProductInfo is what can be guessed about a product from its URL alone.
type ProductInfo struct {
	Name   string
	Brand  string
	Domain string
}

// ParseProductInfo derives a best-effort product name, brand and domain
// from a product URL. Every field may be empty.
func ParseProductInfo(productURL string) ProductInfo {
	parsed, err := url.Parse(productURL)
	if err != nil {
		return ProductInfo{}
	}

	info := ProductInfo{Domain: parsed.Host}

	for _, part := range strings.Split(parsed.Path, "/") {
		if len(part) > 3 && !isAllDigits(part) {
			info.Name = strings.NewReplacer("-", " ", "_", " ").Replace(part)
			break
		}
	}

	if strings.Contains(parsed.Host, "amazon") && amazonDPRegexp.MatchString(productURL) {
		info.Brand = "Amazon Product"
	}

	return info
}

// ProductName derives a display title from the last meaningful URL path
// segment, e.g. "/shop/stand-mixer-pro" becomes "Stand Mixer Pro".
func ProductName(productURL string) string {
	parsed, err := url.Parse(productURL)
	if err != nil {
		return "Unknown Product"
	}

	var candidate string
	for _, part := range strings.Split(parsed.Path, "/") {
		if len(part) > 2 {
			candidate = part
		}
	}
	if candidate == "" {
		return "Unknown Product"
	}

	candidate = strings.NewReplacer("-", " ", "_", " ").Replace(candidate)
	return titleCase(candidate)
}

// ValidateURL reports whether a URL has both a scheme and a host.
func ValidateURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
