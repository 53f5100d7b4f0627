package platform

import (
	"encoding/json"
	"strings"
)

type dingtalkAdapter struct{}

type dingtalkAt struct {
	IsAtAll bool `json:"isAtAll"`
}

type dingtalkTextPayload struct {
	MsgType string `json:"msgtype"`
	Text    struct {
		Content string `json:"content"`
	} `json:"text"`
	At dingtalkAt `json:"at"`
}

type dingtalkMarkdownPayload struct {
	MsgType  string `json:"msgtype"`
	Markdown struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"markdown"`
	At dingtalkAt `json:"at"`
}

func (a *dingtalkAdapter) FormatMessage(content string, config map[string]string) ([]byte, error) {
	isAtAll := configBool(config, "isAtAll", true)
	msgType := configString(config, "msgType", "text")

	if msgType == "markdown" {
		var payload dingtalkMarkdownPayload
		payload.MsgType = "markdown"
		payload.Markdown.Title = configString(config, "title", "提醒")
		payload.Markdown.Text = content
		payload.At.IsAtAll = isAtAll
		return json.Marshal(payload)
	}

	var payload dingtalkTextPayload
	payload.MsgType = "text"
	payload.Text.Content = content
	payload.At.IsAtAll = isAtAll
	return json.Marshal(payload)
}

func (a *dingtalkAdapter) ValidateURL(url string) bool {
	return strings.Contains(url, "oapi.dingtalk.com") &&
		strings.Contains(url, "/robot/send")
}

func (a *dingtalkAdapter) DefaultConfig() map[string]string {
	return map[string]string{
		"msgType": "text",
		"isAtAll": "true",
	}
}

func (a *dingtalkAdapter) MessagePreview(content string, config map[string]string) string {
	if configBool(config, "isAtAll", true) {
		return "@所有人 " + content
	}
	return content
}
