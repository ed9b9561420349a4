package enrichment

import (
	"github.com/mssola/user_agent"
)

type UAInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

func ParseUserAgent(uaString string) *UAInfo {
	if uaString == "" {
		return &UAInfo{DeviceType: "unknown"}
	}

	ua := user_agent.New(uaString)
	browser, _ := ua.Browser()

	deviceType := "desktop"
	switch {
	case ua.Bot():
		deviceType = "bot"
	case ua.Mobile():
		deviceType = "mobile"
	}

	return &UAInfo{
		Browser:    browser,
		OS:         ua.OS(),
		DeviceType: deviceType,
	}
}
