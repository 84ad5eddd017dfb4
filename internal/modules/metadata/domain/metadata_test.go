package domain

import "testing"

func TestPosterURL(t *testing.T) {
	cases := []struct {
		base     string
		path     string
		expected string
	}{
		{base: DefaultImageBaseURL, path: "/abc.jpg", expected: "https://image.tmdb.org/t/p/original/abc.jpg"},
		{base: DefaultImageBaseURL, path: "", expected: ""},
		{base: DefaultImageBaseURL, path: "   ", expected: ""},
		{base: "", path: "/abc.jpg", expected: "https://image.tmdb.org/t/p/original/abc.jpg"},
		{base: "https://img.example/w500/", path: "abc.jpg", expected: "https://img.example/w500/abc.jpg"},
		{base: DefaultImageBaseURL, path: "https://cdn.example/abc.jpg", expected: "https://cdn.example/abc.jpg"},
	}
	for _, tc := range cases {
		if actual := PosterURL(tc.base, tc.path); actual != tc.expected {
			t.Fatalf("PosterURL(%q, %q) expected %q got %q", tc.base, tc.path, tc.expected, actual)
		}
	}
}

func TestCalendarDate(t *testing.T) {
	valid := "2010-07-16"
	empty := ""
	garbage := "16/07/2010"

	if got := CalendarDate(&valid); got == nil || *got != valid {
		t.Fatalf("expected %s, got %v", valid, got)
	}
	for _, raw := range []*string{nil, &empty, &garbage} {
		if got := CalendarDate(raw); got != nil {
			t.Fatalf("expected nil, got %q", *got)
		}
	}
}
