package platform

import (
	"fmt"

	"reminderapi/model"
)

// Fixed adapter table. The platform set is a closed enum, not a plugin host.
var adapters = map[string]Adapter{
	model.PlatformWechatWork: &wechatWorkAdapter{},
	model.PlatformDingtalk:   &dingtalkAdapter{},
	model.PlatformFeishu:     &feishuAdapter{},
	model.PlatformSlack:      &slackAdapter{},
	model.PlatformCustom:     &customAdapter{},
}

// supportedOrder keeps the UI listing stable.
var supportedOrder = []string{
	model.PlatformWechatWork,
	model.PlatformDingtalk,
	model.PlatformFeishu,
	model.PlatformSlack,
	model.PlatformCustom,
}

func Get(platform string) (Adapter, error) {
	adapter, ok := adapters[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
	return adapter, nil
}

func SupportedPlatforms() []string {
	out := make([]string, len(supportedOrder))
	copy(out, supportedOrder)
	return out
}

// DetectPlatform matches url against every non-custom adapter's signature
// and returns the first hit, or "" when nothing matches. Callers must then
// require an explicit platform choice — never assume custom.
func DetectPlatform(url string) string {
	for _, name := range supportedOrder {
		if name == model.PlatformCustom {
			continue
		}
		if adapters[name].ValidateURL(url) {
			return name
		}
	}
	return ""
}
