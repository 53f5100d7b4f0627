package platform

import (
	"encoding/json"
	"strings"
)

type feishuAdapter struct{}

type feishuTextPayload struct {
	MsgType string `json:"msg_type"`
	Content struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Feishu rich text ("post") bodies nest paragraphs of tagged runs.
type feishuPostPayload struct {
	MsgType string `json:"msg_type"`
	Content struct {
		Post struct {
			ZhCN struct {
				Title   string             `json:"title"`
				Content [][]feishuPostElem `json:"content"`
			} `json:"zh_cn"`
		} `json:"post"`
	} `json:"content"`
}

type feishuPostElem struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

func (a *feishuAdapter) FormatMessage(content string, config map[string]string) ([]byte, error) {
	if configString(config, "msgType", "text") == "post" {
		var payload feishuPostPayload
		payload.MsgType = "post"
		payload.Content.Post.ZhCN.Title = configString(config, "title", "提醒")
		payload.Content.Post.ZhCN.Content = [][]feishuPostElem{
			{{Tag: "text", Text: content}},
		}
		return json.Marshal(payload)
	}

	var payload feishuTextPayload
	payload.MsgType = "text"
	payload.Content.Text = content
	return json.Marshal(payload)
}

func (a *feishuAdapter) ValidateURL(url string) bool {
	return strings.Contains(url, "open.feishu.cn") &&
		strings.Contains(url, "/open-apis/bot/")
}

func (a *feishuAdapter) DefaultConfig() map[string]string {
	return map[string]string{
		"msgType": "text",
	}
}

// Feishu webhook bots have no mention-all concept, so the preview is the
// content as-is.
func (a *feishuAdapter) MessagePreview(content string, config map[string]string) string {
	return content
}
