package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// RobotsCache fetches and caches robots.txt per host. Fetch failures are
// treated as "allowed": a missing or unreachable robots.txt never blocks a
// run.
type RobotsCache struct {
	cache map[string]*robotsEntry
	ttl   time.Duration
	mu    sync.RWMutex
}

type robotsEntry struct {
	rules     []robotsRule
	expiresAt time.Time
}

type robotsRule struct {
	path  string
	allow bool
}

func NewRobotsCache(ttl time.Duration) *RobotsCache {
	return &RobotsCache{
		cache: make(map[string]*robotsEntry),
		ttl:   ttl,
	}
}

func (rc *RobotsCache) IsAllowed(ctx context.Context, pageURL *url.URL, client *http.Client) (bool, error) {
	host := pageURL.Host
	urlStr := pageURL.String()

	rc.mu.RLock()
	cached, exists := rc.cache[host]
	rc.mu.RUnlock()

	if exists && time.Now().Before(cached.expiresAt) {
		return isPathAllowed(cached.rules, urlStr), nil
	}

	scheme := pageURL.Scheme
	if scheme == "" {
		scheme = "https"
	}
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return true, nil
	}

	resp, err := client.Do(req)
	if err != nil {
		return true, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return true, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, nil
	}

	rules := parseRobots(string(body))

	rc.mu.Lock()
	rc.cache[host] = &robotsEntry{
		rules:     rules,
		expiresAt: time.Now().Add(rc.ttl),
	}
	rc.mu.Unlock()

	return isPathAllowed(rules, urlStr), nil
}

// parseRobots collects Allow/Disallow rules from groups whose User-agent is
// "*". Named-agent groups are ignored; this tool does not impersonate anyone.
func parseRobots(content string) []robotsRule {
	var rules []robotsRule
	inWildcardGroup := false

	for _, line := range strings.Split(content, "\n") {
		if idx := strings.Index(line, "#"); idx > -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			inWildcardGroup = value == "*"
		case "disallow":
			if inWildcardGroup && value != "" {
				rules = append(rules, robotsRule{path: value, allow: false})
			}
		case "allow":
			if inWildcardGroup && value != "" {
				rules = append(rules, robotsRule{path: value, allow: true})
			}
		}
	}

	return rules
}

// isPathAllowed applies the longest matching rule, Allow winning ties.
func isPathAllowed(rules []robotsRule, urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return true
	}
	path := parsed.Path
	if path == "" {
		path = "/"
	}

	bestLen := -1
	allowed := true
	for _, rule := range rules {
		if !strings.HasPrefix(path, rule.path) {
			continue
		}
		if len(rule.path) > bestLen || (len(rule.path) == bestLen && rule.allow) {
			bestLen = len(rule.path)
			allowed = rule.allow
		}
	}

	return allowed
}
