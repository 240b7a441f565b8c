package device

import "strings"

// LiveURL derives the live channel endpoint from the device base URL:
// ws://<host>/ws, or wss:// when the device is served over https.
func LiveURL(baseURL string) (string, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + PathLive
	return u.String(), nil
}
