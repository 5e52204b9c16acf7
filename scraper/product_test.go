package scraper

import "testing"

func TestParseProductInfo(t *testing.T) {
	tests := []struct {
		url        string
		wantName   string
		wantBrand  string
		wantDomain string
	}{
		{
			"https://shop.example.com/products/stand-mixer-pro",
			"products", "", "shop.example.com",
		},
		{
			"https://www.amazon.com/dp/B0EXAMPLE1",
			"B0EXAMPLE1", "Amazon Product", "www.amazon.com",
		},
		{
			"https://example.com/12345/wireless_earbuds",
			"wireless earbuds", "", "example.com",
		},
	}

	for _, tt := range tests {
		info := ParseProductInfo(tt.url)
		if info.Name != tt.wantName {
			t.Errorf("ParseProductInfo(%q).Name = %q; want %q", tt.url, info.Name, tt.wantName)
		}
		if info.Brand != tt.wantBrand {
			t.Errorf("ParseProductInfo(%q).Brand = %q; want %q", tt.url, info.Brand, tt.wantBrand)
		}
		if info.Domain != tt.wantDomain {
			t.Errorf("ParseProductInfo(%q).Domain = %q; want %q", tt.url, info.Domain, tt.wantDomain)
		}
	}
}

func TestProductName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://shop.example.com/products/stand-mixer-pro", "Stand Mixer Pro"},
		{"https://example.com/wireless_earbuds", "Wireless Earbuds"},
		{"https://example.com/", "Unknown Product"},
		{"", "Unknown Product"},
	}

	for _, tt := range tests {
		if got := ProductName(tt.url); got != tt.want {
			t.Errorf("ProductName(%q) = %q; want %q", tt.url, got, tt.want)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/product", true},
		{"http://example.com", true},
		{"example.com/product", false},
		{"", false},
		{"not a url at all", false},
	}

	for _, tt := range tests {
		if got := ValidateURL(tt.url); got != tt.want {
			t.Errorf("ValidateURL(%q) = %v; want %v", tt.url, got, tt.want)
		}
	}
}
