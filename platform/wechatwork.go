package platform

import (
	"encoding/json"
	"strings"
)

// WeChat Work group robots mention everyone by putting @all in the
// mentioned_list and prefixing the text itself.
const wechatMentionAllPrefix = "@所有人\n"

type wechatWorkAdapter struct{}

type wechatTextPayload struct {
	MsgType string `json:"msgtype"`
	Text    struct {
		Content       string   `json:"content"`
		MentionedList []string `json:"mentioned_list,omitempty"`
	} `json:"text"`
}

type wechatMarkdownPayload struct {
	MsgType  string `json:"msgtype"`
	Markdown struct {
		Content string `json:"content"`
	} `json:"markdown"`
}

func (a *wechatWorkAdapter) FormatMessage(content string, config map[string]string) ([]byte, error) {
	mentionAll := configBool(config, "mentionAll", true)
	msgType := configString(config, "msgType", "text")

	if msgType == "markdown" {
		var payload wechatMarkdownPayload
		payload.MsgType = "markdown"
		payload.Markdown.Content = content
		return json.Marshal(payload)
	}

	var payload wechatTextPayload
	payload.MsgType = "text"
	payload.Text.Content = content
	if mentionAll {
		payload.Text.Content = wechatMentionAllPrefix + content
		payload.Text.MentionedList = []string{"@all"}
	}
	return json.Marshal(payload)
}

func (a *wechatWorkAdapter) ValidateURL(url string) bool {
	return strings.Contains(url, "qyapi.weixin.qq.com") &&
		strings.Contains(url, "/cgi-bin/webhook/send")
}

func (a *wechatWorkAdapter) DefaultConfig() map[string]string {
	return map[string]string{
		"msgType":    "text",
		"mentionAll": "true",
	}
}

func (a *wechatWorkAdapter) MessagePreview(content string, config map[string]string) string {
	if configString(config, "msgType", "text") == "markdown" {
		return content
	}
	if configBool(config, "mentionAll", true) {
		return wechatMentionAllPrefix + content
	}
	return content
}
