package firewall

import (
	"regexp"
	"strconv"
	"strings"
)

// maxScanLength caps how much of a value is fed to the regex engines so
// adversarial inputs cannot trigger pathological matching times.
const maxScanLength = 4096

const DefaultSanitizeLength = 1000

var (
	sqlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bunion\b[\s\S]*\bselect\b`),
		regexp.MustCompile(`(?i)\b(select|insert|update|delete|drop)\b`),
		regexp.MustCompile(`(?i)\bexec(ute)?\b`),
		regexp.MustCompile(`--|;|/\*|\*/`),
		regexp.MustCompile(`(?i)=\s*['"]?\w*['"]?\s*(--|;)`),
	}

	xssPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script[^>]*>`),
		regexp.MustCompile(`(?i)javascript\s*:`),
		regexp.MustCompile(`(?i)\bon\w+\s*=`),
		regexp.MustCompile(`(?i)<(iframe|object|embed)\b`),
	}

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	phoneStrip = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "", ".", "")
)

var allowedFileExtensions = map[string]struct{}{
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {},
	"ppt": {}, "pptx": {}, "txt": {}, "csv": {}, "jpg": {},
	"jpeg": {}, "png": {}, "gif": {}, "zip": {},
}

// Classification is the verdict of a single value scan.
type Classification struct {
	SQLInjection bool
	XSS          bool
}

func (c Classification) Malicious() bool {
	return c.SQLInjection || c.XSS
}

// Classifier decides whether a value carries a known attack pattern. The
// request validator only depends on this interface so the regex set can be
// replaced without touching call sites.
type Classifier interface {
	Classify(value string) Classification
}

type regexClassifier struct{}

// NewRegexClassifier returns the default pattern-based classifier.
func NewRegexClassifier() Classifier {
	return regexClassifier{}
}

func (regexClassifier) Classify(value string) Classification {
	value = SanitizeString(value, maxScanLength)
	return Classification{
		SQLInjection: ContainsSQLInjection(value),
		XSS:          ContainsXSS(value),
	}
}

// ContainsSQLInjection reports whether value matches any of the SQL keyword,
// comment, or statement-terminator patterns.
func ContainsSQLInjection(value string) bool {
	value = SanitizeString(value, maxScanLength)
	for _, pattern := range sqlPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// ContainsXSS reports whether value matches script blocks, javascript: URIs,
// inline event handlers, or embedded frame/object tags.
func ContainsXSS(value string) bool {
	value = SanitizeString(value, maxScanLength)
	for _, pattern := range xssPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// SanitizeString strips embedded NUL bytes and truncates to maxLength runes.
func SanitizeString(value string, maxLength int) string {
	if strings.ContainsRune(value, 0) {
		value = strings.ReplaceAll(value, "\x00", "")
	}
	if maxLength <= 0 {
		maxLength = DefaultSanitizeLength
	}
	runes := []rune(value)
	if len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return value
}

func ValidateEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// ValidatePhone strips separator characters and requires an optional leading
// plus followed by 2-15 digits with a non-zero first digit.
func ValidatePhone(value string) bool {
	return phoneRegex.MatchString(phoneStrip.Replace(value))
}

// ValidateFilename enforces the upload filename policy: non-empty, no path
// traversal, at most 255 characters, and an allow-listed extension. It is a
// name check only, not a content-type guarantee.
func ValidateFilename(value string) (bool, string) {
	if value == "" {
		return false, "empty filename"
	}
	if strings.Contains(value, "..") || strings.ContainsAny(value, `/\`) {
		return false, "invalid filename"
	}
	if len(value) > 255 {
		return false, "filename too long"
	}
	ext := ""
	if idx := strings.LastIndex(value, "."); idx >= 0 {
		ext = strings.ToLower(value[idx+1:])
	}
	if _, ok := allowedFileExtensions[ext]; !ok {
		return false, "file type not allowed"
	}
	return true, ""
}

// ValidateNumeric parses value as a base-10 integer.
func ValidateNumeric(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
