package firewall

import (
	"net"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// DefaultMaxBodyBytes caps the declared request payload at 16 MiB.
	DefaultMaxBodyBytes = 16 << 20

	multipartMemoryLimit = 10 << 20

	// UnknownClientIP is the sentinel used when no address can be resolved.
	UnknownClientIP = "unknown"
)

const (
	ReasonValid            = "Valid"
	ReasonAccessDenied     = "Access denied"
	ReasonInvalidMethod    = "Invalid request method"
	ReasonInvalidContent   = "Invalid Content-Type"
	ReasonPayloadTooLarge  = "Request payload too large"
	ReasonMaliciousInput   = "Malicious input detected"
	ReasonValidatorFailure = "Request validation error"
)

var allowedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodDelete:  {},
	http.MethodPatch:   {},
	http.MethodOptions: {},
	http.MethodHead:    {},
}

var allowedContentTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Verdict is the outcome of validating one request. It is produced fresh per
// request and never persisted.
type Verdict struct {
	Allowed bool
	Reason  string
}

type ValidatorConfig struct {
	Registry     *Registry
	Classifier   Classifier
	MaxBodyBytes int64
	// CountryLookup optionally annotates suspicious-activity logs with the
	// origin country of the client IP. May be nil.
	CountryLookup func(ip string) string
}

// RequestValidator runs the ordered firewall checks against an inbound
// request and renders a pass/fail verdict.
type RequestValidator struct {
	registry   *Registry
	classifier Classifier
	maxBody    int64
	country    func(ip string) string
}

func NewRequestValidator(cfg ValidatorConfig) *RequestValidator {
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry(RegistryConfig{})
	}
	classifier := cfg.Classifier
	if classifier == nil {
		classifier = NewRegexClassifier()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	return &RequestValidator{
		registry:   registry,
		classifier: classifier,
		maxBody:    maxBody,
		country:    cfg.CountryLookup,
	}
}

func (v *RequestValidator) Registry() *Registry {
	return v.registry
}

// ClientIP resolves the requesting address, preferring the first entry of
// X-Forwarded-For, then X-Real-IP, then the transport peer address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}

	return UnknownClientIP
}

// Validate evaluates the check sequence in order, failing fast on the first
// violated rule.
func (v *RequestValidator) Validate(r *http.Request) Verdict {
	clientIP := ClientIP(r)
	if !v.registry.IsAllowed(clientIP) {
		v.logRejection(r, clientIP, ReasonAccessDenied)
		return Verdict{Reason: ReasonAccessDenied}
	}

	if _, ok := allowedMethods[r.Method]; !ok {
		v.logRejection(r, clientIP, ReasonInvalidMethod)
		return Verdict{Reason: ReasonInvalidMethod}
	}

	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		if !contentTypeAllowed(r.Header.Get("Content-Type")) {
			v.logRejection(r, clientIP, ReasonInvalidContent)
			return Verdict{Reason: ReasonInvalidContent}
		}
	}

	if r.ContentLength > v.maxBody {
		v.logRejection(r, clientIP, ReasonPayloadTooLarge)
		return Verdict{Reason: ReasonPayloadTooLarge}
	}

	if r.Method == http.MethodPost {
		if field, category, found := v.scanFormFields(r); found {
			v.registry.MarkSuspicious(clientIP)
			log.Warn("Malicious input detected",
				"field", field,
				"category", category,
				"client_ip", clientIP,
				"country", v.countryOf(clientIP),
				"path", r.URL.Path,
			)
			return Verdict{Reason: ReasonMaliciousInput}
		}
	}

	return Verdict{Allowed: true, Reason: ReasonValid}
}

func contentTypeAllowed(contentType string) bool {
	for _, allowed := range allowedContentTypes {
		if strings.Contains(contentType, allowed) {
			return true
		}
	}
	return false
}

func (v *RequestValidator) scanFormFields(r *http.Request) (field, category string, found bool) {
	for name, value := range formFields(r) {
		classification := v.classifier.Classify(value)
		switch {
		case classification.SQLInjection:
			return name, "sql_injection", true
		case classification.XSS:
			return name, "xss", true
		}
	}
	return "", "", false
}

// formFields decodes the request's form-encoded fields into a flat
// name-to-value map. Multi-valued fields are joined so every submitted value
// is scanned.
func formFields(r *http.Request) map[string]string {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			log.Warn("Failed to parse form body", "error", err, "path", r.URL.Path)
			return nil
		}
		return flattenValues(r.PostForm)
	case strings.Contains(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			log.Warn("Failed to parse multipart body", "error", err, "path", r.URL.Path)
			return nil
		}
		if r.MultipartForm == nil {
			return nil
		}
		return flattenValues(r.MultipartForm.Value)
	default:
		return nil
	}
}

func flattenValues(values map[string][]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for name, list := range values {
		out[name] = strings.Join(list, "\n")
	}
	return out
}

func (v *RequestValidator) countryOf(ip string) string {
	if v.country == nil {
		return ""
	}
	return v.country(ip)
}

func (v *RequestValidator) logRejection(r *http.Request, clientIP, reason string) {
	log.Info("Request rejected",
		"reason", reason,
		"client_ip", clientIP,
		"country", v.countryOf(clientIP),
		"method", r.Method,
		"path", r.URL.Path,
	)
}
