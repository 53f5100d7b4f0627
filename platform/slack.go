package platform

import (
	"encoding/json"
	"strings"
)

type slackAdapter struct{}

type slackPayload struct {
	Text      string `json:"text"`
	Username  string `json:"username"`
	IconEmoji string `json:"icon_emoji"`
}

func (a *slackAdapter) FormatMessage(content string, config map[string]string) ([]byte, error) {
	// Fixed bot identity for incoming webhooks.
	payload := slackPayload{
		Text:      content,
		Username:  "Reminder Bot",
		IconEmoji: ":alarm_clock:",
	}
	return json.Marshal(payload)
}

func (a *slackAdapter) ValidateURL(url string) bool {
	return strings.Contains(url, "hooks.slack.com") &&
		strings.Contains(url, "/services/")
}

func (a *slackAdapter) DefaultConfig() map[string]string {
	return map[string]string{}
}

func (a *slackAdapter) MessagePreview(content string, config map[string]string) string {
	return content
}
