package util

// Account is the already-authenticated identity used for launches. The
// token exchange that produces it lives outside this module.
type Account struct {
	Name        string
	Uuid        string
	AccessToken string
	Type        string
}

type WindowConfig struct {
	Width      int
	Height     int
	Fullscreen bool
}

type LaunchOptions struct {
	Account       Account
	Window        WindowConfig
	ExtraJvmArgs  []string
	ExtraGameArgs []string
}

// Profile is one entry of launcher_profiles.json. The official launcher
// reads this file, so the keys follow its camelCase format.
type Profile struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Icon          string `json:"icon,omitempty"`
	LastVersionId string `json:"lastVersionId"`
	Created       string `json:"created,omitempty"`
	JavaArgs      string `json:"javaArgs,omitempty"`
	LastUsed      string `json:"lastUsed,omitempty"`
}
