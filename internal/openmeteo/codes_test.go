package openmeteo

import "testing"

func TestDescribe(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{1, "Mainly clear"},
		{2, "Partly cloudy"},
		{3, "Overcast"},
		{45, "Fog"},
		{48, "Depositing rime fog"},
		{51, "Light drizzle"},
		{61, "Rain"},
		{71, "Snow"},
		{80, "Rain showers"},
		{95, "Thunderstorm"},
		{999, "Weather code 999"},
		{-1, "Weather code -1"},
	}

	for _, tt := range tests {
		if got := Describe(tt.code); got != tt.want {
			t.Errorf("Describe(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Clear"},
		{1, "Clouds"},
		{2, "Clouds"},
		{3, "Clouds"},
		{45, "Fog"},
		{48, "Depositing"},
		{61, "Rain"},
		{95, "Thunderstorm"},
		{999, "Weather"},
	}

	for _, tt := range tests {
		if got := Categorize(tt.code); got != tt.want {
			t.Errorf("Categorize(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
