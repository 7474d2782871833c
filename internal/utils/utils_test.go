package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"truncate me please", 8, "truncate..."},
		{"anything", 0, ""},
		{"héllö wörld", 5, "héllö..."},
	}

	for _, tc := range cases {
		if got := TruncateForLog(tc.in, tc.limit); got != tc.want {
			t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}
