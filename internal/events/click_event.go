package events

type ClickEvent struct {
	Code       string
	LinkID     uint32
	Timestamp  int64
	IP         string
	UserAgent  string
	Referer    string
	Browser    string
	OS         string
	DeviceType string
}

func (e *ClickEvent) fields() map[string]interface{} {
	fields := map[string]interface{}{
		"code":      e.Code,
		"link_id":   e.LinkID,
		"timestamp": e.Timestamp,
	}

	optional := map[string]string{
		"ip":          e.IP,
		"user_agent":  e.UserAgent,
		"referer":     e.Referer,
		"browser":     e.Browser,
		"os":          e.OS,
		"device_type": e.DeviceType,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}

	return fields
}
