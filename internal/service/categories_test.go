package service

import "testing"

func TestMatchCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"graphics", "graphics"},
		{"Graphics", "graphics"},
		{"E-books", "ebooks"},
		{"temp", "templates"},
		{"soft", "software"},
		{"grahpics", "graphics"}, // transposition
		{"fotns", "fonts"},
		{"", "other"},
		{"banana stand", "other"},
	}
	for _, tc := range cases {
		if got := MatchCategory(tc.in); got != tc.want {
			t.Errorf("MatchCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
