package etl

import "testing"

func TestDisplayCountry(t *testing.T) {
	tests := []struct {
		city string
		want string
	}{
		{"London,UK", "United Kingdom"},
		{"New York,US", "United States"},
		{"Dubai,UAE", "United Arab Emirates"},
		{"Istanbul,Turkey", "Turkiye"},
		{"Nairobi,Kenya", "Kenya"},
		{"Cape Town,South Africa", "South Africa"},
		{"Mexico City, Mexico", "Mexico"},
		{"Singapore,Singapore", "Singapore"},
		{"NoComma", "NoComma"},
	}

	for _, tt := range tests {
		if got := DisplayCountry(tt.city); got != tt.want {
			t.Errorf("DisplayCountry(%q) = %q, want %q", tt.city, got, tt.want)
		}
	}
}
