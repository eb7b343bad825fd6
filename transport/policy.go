package transport

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Songmu/flextime"
)

// Policy bundles the cross-cutting request policies applied before JSON-RPC
// dispatch. Each policy is independently toggleable; a nil Policy disables
// them all, which is how tests exercise the dispatcher directly.
type Policy struct {
	// RateLimit rejects clients exceeding MaxRequests per Window. Nil disables.
	RateLimit *RateLimitPolicy

	// MaxBodyBytes caps the request body size before parsing. Zero disables.
	MaxBodyBytes int64

	// SanitizeInput recursively strips risky characters from every
	// string-typed field of the request params.
	SanitizeInput bool

	// SecurityHeaders adds the standard security response headers.
	SecurityHeaders bool
}

// RateLimitPolicy is a fixed-window request budget per client. Clients are
// identified by remote IP plus User-Agent; each client gets at most
// MaxRequests per Window, counted from its first request in the window.
type RateLimitPolicy struct {
	MaxRequests int
	Window      time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	count       int
	windowStart time.Time
	lastSeen    time.Time
}

// DefaultPolicy returns the production defaults: 100 requests per client per
// minute, 10MB bodies, sanitization and security headers on.
func DefaultPolicy() *Policy {
	return &Policy{
		RateLimit: &RateLimitPolicy{
			MaxRequests: 100,
			Window:      time.Minute,
		},
		MaxBodyBytes:    10 * 1024 * 1024,
		SanitizeInput:   true,
		SecurityHeaders: true,
	}
}

// Allow reports whether the client identified by clientID is within its
// request budget for the current window.
func (p *RateLimitPolicy) Allow(clientID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.visitors == nil {
		p.visitors = make(map[string]*visitor)
	}
	now := flextime.Now()
	v, ok := p.visitors[clientID]
	if !ok {
		v = &visitor{windowStart: now}
		p.visitors[clientID] = v
	}
	if now.Sub(v.windowStart) >= p.Window {
		v.windowStart = now
		v.count = 0
	}
	v.lastSeen = now
	p.pruneLocked(now)
	v.count++
	return v.count <= p.MaxRequests
}

// pruneLocked drops visitors idle for several windows to bound the map.
func (p *RateLimitPolicy) pruneLocked(now time.Time) {
	if len(p.visitors) < 1024 {
		return
	}
	expiry := 3 * p.Window
	for id, v := range p.visitors {
		if now.Sub(v.lastSeen) > expiry {
			delete(p.visitors, id)
		}
	}
}

// ClientID derives the rate-limiting identity of a request from its remote
// IP and User-Agent.
func ClientID(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip != "" {
		ip, _, _ = strings.Cut(ip, ",")
		ip = strings.TrimSpace(ip)
	} else {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ip = host
	}
	return ip + ":" + r.UserAgent()
}

// maxSanitizedLength caps every inbound string field.
const maxSanitizedLength = 1000

var sanitizeReplacer = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")

// SanitizeString strips characters usable for injection and truncates
// overlong input.
func SanitizeString(s string) string {
	s = sanitizeReplacer.Replace(s)
	if runes := []rune(s); len(runes) > maxSanitizedLength {
		s = string(runes[:maxSanitizedLength])
	}
	return s
}

// SanitizeValue recursively sanitizes every string in a decoded JSON value.
func SanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return SanitizeString(val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = SanitizeValue(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = SanitizeValue(item)
		}
		return val
	default:
		return v
	}
}

// securityHeaders are set on every response when the policy enables them.
var securityHeaders = map[string]string{
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"X-XSS-Protection":          "1; mode=block",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
	"Content-Security-Policy":   "default-src 'self'",
}

func applySecurityHeaders(w http.ResponseWriter) {
	for k, v := range securityHeaders {
		w.Header().Set(k, v)
	}
}
