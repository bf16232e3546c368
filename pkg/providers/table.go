package providers

import (
	"sort"
	"strings"
	"sync"
)

// AccountPlaceholder is the token in a base URL that is replaced with the
// caller's account identifier.
const AccountPlaceholder = "{account_id}"

// builtinBaseURLs maps provider name tokens to their fixed API base URLs.
// Entries may contain an AccountPlaceholder token.
var builtinBaseURLs = map[string]string{
	"openai":           "https://api.openai.com/v1",
	"anthropic":        "https://api.anthropic.com",
	"workers-ai":       "https://api.cloudflare.com/client/v4/accounts/{account_id}/ai/run",
	"groq":             "https://api.groq.com/openai/v1",
	"mistral":          "https://api.mistral.ai",
	"cohere":           "https://api.cohere.ai",
	"perplexity-ai":    "https://api.perplexity.ai",
	"google-ai-studio": "https://generativelanguage.googleapis.com",
	"grok":             "https://api.x.ai",
	"deepseek":         "https://api.deepseek.com",
	"openrouter":       "https://openrouter.ai/api",
	"huggingface":      "https://api-inference.huggingface.co",
	"replicate":        "https://api.replicate.com",
}

// Table resolves provider names to base URLs. It layers runtime overrides
// (from configuration, hot-reloadable) over the built-in table and is safe
// for concurrent use.
type Table struct {
	mu        sync.RWMutex
	overrides map[string]string
}

// NewTable creates a provider table with no overrides.
func NewTable() *Table {
	return &Table{overrides: make(map[string]string)}
}

// BaseURL returns the base URL for a provider name and whether the provider
// is known. Overrides take precedence over built-in entries.
func (t *Table) BaseURL(provider string) (string, bool) {
	t.mu.RLock()
	base, ok := t.overrides[provider]
	t.mu.RUnlock()
	if ok {
		return base, true
	}

	base, ok = builtinBaseURLs[provider]
	return base, ok
}

// SetOverrides replaces the override layer wholesale. Passing nil or an
// empty map removes all overrides.
func (t *Table) SetOverrides(overrides map[string]string) {
	cp := make(map[string]string, len(overrides))
	for name, base := range overrides {
		cp[name] = base
	}

	t.mu.Lock()
	t.overrides = cp
	t.mu.Unlock()
}

// Providers returns the sorted names of all known providers, built-in and
// overridden.
func (t *Table) Providers() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[string]struct{}, len(builtinBaseURLs)+len(t.overrides))
	for name := range builtinBaseURLs {
		seen[name] = struct{}{}
	}
	for name := range t.overrides {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// substituteAccount replaces the account placeholder in a base URL.
func substituteAccount(baseURL, accountID string) string {
	return strings.ReplaceAll(baseURL, AccountPlaceholder, accountID)
}
