package location

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw     string
		city    string
		country string
		typ     Type
	}{
		{"San Francisco, CA", "San Francisco", "USA", TypeOnsite},
		{"San Francisco, CA, USA", "San Francisco", "USA", TypeOnsite},
		{"Remote", "", "", TypeRemote},
		{"Remote - Worldwide", "", "", TypeRemote},
		{"London, United Kingdom", "London", "United Kingdom", TypeOnsite},
		{"Bengaluru, India", "Bangalore", "India", TypeOnsite},
		{"Hybrid - Berlin, Germany", "Hybrid - Berlin", "Germany", TypeHybrid},
		{"", "", "", TypeOnsite},
		{"NYC", "New York", "USA", TypeOnsite},
		{"Singapore", "", "Singapore", TypeOnsite},
	}

	for _, tc := range cases {
		got := Normalize(tc.raw)
		if got.City != tc.city || got.Country != tc.country || got.Type != tc.typ {
			t.Errorf("Normalize(%q) = {%q %q %v}, want {%q %q %v}",
				tc.raw, got.City, got.Country, got.Type, tc.city, tc.country, tc.typ)
		}
	}
}

func TestRegion(t *testing.T) {
	if Region("USA") != "north-america" {
		t.Fatalf("Region(USA) = %q", Region("USA"))
	}
	if Region("Germany") != "europe" {
		t.Fatalf("Region(Germany) = %q", Region("Germany"))
	}
	if Region("Atlantis") != "" {
		t.Fatalf("expected empty region for unknown country")
	}
}
