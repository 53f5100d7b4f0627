package platform

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// messageToken is the single substitution point a custom body template
// must contain.
const messageToken = "{{message}}"

type customAdapter struct{}

func (a *customAdapter) FormatMessage(content string, config map[string]string) ([]byte, error) {
	template := configString(config, "bodyTemplate", "")
	if template == "" {
		return nil, fmt.Errorf("%w: empty body template", ErrBadTemplate)
	}
	if !strings.Contains(template, messageToken) {
		return nil, fmt.Errorf("%w: template does not contain %s", ErrBadTemplate, messageToken)
	}

	// Substitute through a JSON-escaped copy of the content so the result
	// stays valid JSON whatever the message contains.
	escaped, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	body := strings.ReplaceAll(template, messageToken, string(escaped[1:len(escaped)-1]))

	if !json.Valid([]byte(body)) {
		return nil, fmt.Errorf("%w: substituted template is not valid JSON", ErrBadTemplate)
	}
	return []byte(body), nil
}

// Custom accepts any syntactically valid absolute http(s) URL; there is no
// host signature to match.
func (a *customAdapter) ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (a *customAdapter) DefaultConfig() map[string]string {
	return map[string]string{
		"bodyTemplate": `{"text": "{{message}}"}`,
	}
}

func (a *customAdapter) MessagePreview(content string, config map[string]string) string {
	body, err := a.FormatMessage(content, config)
	if err != nil {
		return content
	}
	return string(body)
}
