package platform

import (
	"errors"
	"net/http"
	"strings"

	"reminderapi/model"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrBadTemplate         = errors.New("invalid message template")
)

// Adapter formats and validates outbound webhook messages for one chat
// platform. FormatMessage must be deterministic: same content and config
// always produce the same bytes.
type Adapter interface {
	// FormatMessage builds the platform-native JSON body for content.
	FormatMessage(content string, config map[string]string) ([]byte, error)
	// ValidateURL reports whether url carries this platform's webhook signature.
	ValidateURL(url string) bool
	// DefaultConfig seeds a reminder's platform config on create or
	// platform switch.
	DefaultConfig() map[string]string
	// MessagePreview renders what will be sent, without network I/O.
	// Must mirror FormatMessage's mention/prefix decisions exactly.
	MessagePreview(content string, config map[string]string) string
}

// ApplyCustomHeaders copies the custom platform's header.* config entries
// onto an outbound request. Every webhook POST — scheduled delivery and the
// connection test alike — must go through this so the test predicts delivery.
// Non-custom platforms never get extra headers.
func ApplyCustomHeaders(req *http.Request, platformName string, config map[string]string) {
	if platformName != model.PlatformCustom {
		return
	}
	for key, value := range config {
		if name, ok := strings.CutPrefix(key, "header."); ok {
			req.Header.Set(name, value)
		}
	}
}

func configBool(config map[string]string, key string, def bool) bool {
	v, ok := config[key]
	if !ok || v == "" {
		return def
	}
	return v == "true" || v == "1"
}

func configString(config map[string]string, key, def string) string {
	if v, ok := config[key]; ok && v != "" {
		return v
	}
	return def
}
