package security

import "testing"

func TestCanModify(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		owner   string
		want    bool
	}{
		{"owner", "u1", "u1", true},
		{"other user", "u2", "u1", false},
		{"empty subject", "", "", false},
		{"empty owner", "u1", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanModify(tc.subject, tc.owner); got != tc.want {
				t.Fatalf("CanModify(%q, %q) = %v, want %v", tc.subject, tc.owner, got, tc.want)
			}
		})
	}
}
