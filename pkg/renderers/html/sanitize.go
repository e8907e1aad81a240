package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// DefaultSanitizer returns the policy applied to content and htmlelement
// markup: user-generated content rules plus class attributes.
func DefaultSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		contentPolicy = policy
	})
	return contentPolicy
}

func sanitizeWith(policy *bluemonday.Policy) func(string) string {
	return func(markup string) string {
		trimmed := strings.TrimSpace(markup)
		if trimmed == "" {
			return ""
		}
		return strings.TrimSpace(policy.Sanitize(trimmed))
	}
}
