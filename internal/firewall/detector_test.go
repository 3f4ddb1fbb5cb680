package firewall

import (
	"strings"
	"testing"
)

func TestContainsSQLInjection(t *testing.T) {
	cases := map[string]bool{
		"UNION SELECT password FROM users": true,
		"1; DROP TABLE users":              true,
		"1=1;--":                           true,
		"robert'); DROP TABLE students;--": true,
		"exec xp_cmdshell":                 true,
		"/* comment */ value":              true,
		"engine overhaul scheduled":        false,
		"port call at Rotterdam":           false,
		"":                                 false,
	}

	for input, want := range cases {
		if got := ContainsSQLInjection(input); got != want {
			t.Fatalf("ContainsSQLInjection(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestContainsXSS(t *testing.T) {
	cases := map[string]bool{
		"<script>alert(1)</script>":    true,
		"<SCRIPT src=evil.js>":         true,
		"javascript:alert(1)":          true,
		"<img src=x onerror=alert(1)>": true,
		"<iframe src=\"http://x\">":    true,
		"<object data=x>":              true,
		"plain deck report":            false,
		"temperature rising steadily":  false,
		"":                             false,
	}

	for input, want := range cases {
		if got := ContainsXSS(input); got != want {
			t.Fatalf("ContainsXSS(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("abc\x00def", 100); got != "abcdef" {
		t.Fatalf("expected NUL bytes stripped, got %q", got)
	}

	long := strings.Repeat("x", 50)
	if got := SanitizeString(long, 10); len(got) != 10 {
		t.Fatalf("expected truncation to 10, got %d characters", len(got))
	}

	if got := SanitizeString("unchanged", 0); got != "unchanged" {
		t.Fatalf("zero max length should fall back to default, got %q", got)
	}
}

func TestValidateEmail(t *testing.T) {
	cases := map[string]bool{
		"user@example.com":        true,
		"chief.engineer+x@ops.io": true,
		"not-an-email":            false,
		"missing@tld":             false,
		"@example.com":            false,
		"":                        false,
	}

	for input, want := range cases {
		if got := ValidateEmail(input); got != want {
			t.Fatalf("ValidateEmail(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	cases := map[string]bool{
		"+1 (555) 123-4567": true,
		"+4915112345678":    true,
		"555.123.4567":      true,
		"abc123":            false,
		"0123456":           false,
		"+1":                false,
		"":                  false,
	}

	for input, want := range cases {
		if got := ValidatePhone(input); got != want {
			t.Fatalf("ValidatePhone(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestValidateFilename(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"report.pdf", true},
		{"Engine Log.XLSX", true},
		{"photo.jpeg", true},
		{"report.exe", false},
		{"../etc/passwd.txt", false},
		{"logs/report.pdf", false},
		{"dump\\report.pdf", false},
		{"noextension", false},
		{"", false},
		{strings.Repeat("a", 300) + ".pdf", false},
	}

	for _, tc := range cases {
		valid, reason := ValidateFilename(tc.name)
		if valid != tc.valid {
			t.Fatalf("ValidateFilename(%q) = %v (%s), want %v", tc.name, valid, reason, tc.valid)
		}
		if !valid && reason == "" {
			t.Fatalf("ValidateFilename(%q) rejected without a reason", tc.name)
		}
	}
}

func TestValidateNumeric(t *testing.T) {
	if value, ok := ValidateNumeric("42"); !ok || value != 42 {
		t.Fatalf("ValidateNumeric(\"42\") = (%d, %v)", value, ok)
	}
	if value, ok := ValidateNumeric("-7"); !ok || value != -7 {
		t.Fatalf("ValidateNumeric(\"-7\") = (%d, %v)", value, ok)
	}
	for _, input := range []string{"4.2", "abc", "", "7km"} {
		if value, ok := ValidateNumeric(input); ok || value != 0 {
			t.Fatalf("ValidateNumeric(%q) = (%d, %v), want (0, false)", input, value, ok)
		}
	}
}

func TestRegexClassifier(t *testing.T) {
	classifier := NewRegexClassifier()

	c := classifier.Classify("1; DROP TABLE users")
	if !c.SQLInjection || c.XSS {
		t.Fatalf("unexpected classification for SQL payload: %+v", c)
	}

	c = classifier.Classify("<script>alert(1)</script>")
	if !c.XSS {
		t.Fatalf("unexpected classification for XSS payload: %+v", c)
	}
	if !c.Malicious() {
		t.Fatal("Malicious() should be true when any category matches")
	}

	c = classifier.Classify("routine inspection complete")
	if c.Malicious() {
		t.Fatalf("benign value classified as malicious: %+v", c)
	}
}
