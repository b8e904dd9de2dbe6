package respond

import (
	"regexp"
)

// Patterns for secrets that can leak into error text via upstream calls.
// The Anthropic pattern must run before the OpenAI one since "sk-ant-"
// is a prefix of the broader "sk-" form.
var (
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Session cookies forwarded to the backend API
	sessionCookiePattern = regexp.MustCompile(`(session|better-auth\.session_token)=[^;\s"]+`)

	// Bearer tokens in echoed request headers
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/-]+=*`)

	// Credentials embedded in URLs
	urlPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// SanitizeError returns the error message with API keys, session tokens
// and URL credentials masked. Use it whenever an error that passed
// through the upstream client is written to a log.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = sessionCookiePattern.ReplaceAllString(msg, "$1=****")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	msg = urlPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
