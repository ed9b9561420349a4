package enrichment

import "testing"

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name       string
		ua         string
		deviceType string
	}{
		{"empty", "", "unknown"},
		{"desktop firefox", "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0", "desktop"},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Mobile/15E148 Safari/604.1", "mobile"},
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "bot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseUserAgent(tt.ua)
			if info.DeviceType != tt.deviceType {
				t.Errorf("device type = %q, want %q", info.DeviceType, tt.deviceType)
			}
		})
	}
}
