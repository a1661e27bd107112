package host

import "strings"

// Setting identifiers shared with the host's settings definitions.
const (
	SettingURL                = "mediaimport.url"
	SettingTestAuthentication = "mediaimport.testauthentication"
	SettingForceSync          = "mediaimport.forcesync"
	SettingImportViews        = "mediaimport.importviews"
)

// URL returns the remote server URL stored in a provider's settings.
func URL(s Settings) (string, error) {
	if s == nil {
		return "", ErrNoSettings
	}
	url := strings.TrimSpace(s.GetString(SettingURL))
	if url == "" {
		return "", ErrNoURL
	}
	return url, nil
}

// SetURL stores the remote server URL in a provider's settings.
func SetURL(s Settings, url string) error {
	if s == nil {
		return ErrNoSettings
	}
	if strings.TrimSpace(url) == "" {
		return ErrInvalidURL
	}
	return s.SetString(SettingURL, url)
}
