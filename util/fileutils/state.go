package fileutils

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const keyringService = "launchman"

// Settings is the persisted launcher configuration, stored as
// launchman.json inside the instance root. Secrets never go here, see
// SaveToken.
type Settings struct {
	JvmArgs             []string
	MemoryMin           int
	MemoryMax           int
	ConcurrentDownloads int
	JavaPath            string
}

func DefaultSettings() Settings {
	return Settings{
		JvmArgs: []string{
			"-XX:+UnlockExperimentalVMOptions",
			"-XX:+UseG1GC",
			"-XX:G1NewSizePercent=20",
			"-XX:G1ReservePercent=20",
			"-XX:MaxGCPauseMillis=50",
			"-XX:G1HeapRegionSize=32M",
		},
		MemoryMin:           4096,
		MemoryMax:           8192,
		ConcurrentDownloads: 8,
	}
}

func settingsFile(root string) string {
	return filepath.Join(root, "launchman.json")
}

func LoadSettings(root string) (Settings, error) {
	data, err := os.ReadFile(settingsFile(root))
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func SaveSettings(root string, settings Settings) error {
	data, err := json.MarshalIndent(settings, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(settingsFile(root), data, 0644)
}

// SaveToken keeps the account bearer token in the OS keychain, keyed by
// player name.
func SaveToken(name string, token string) error {
	return keyring.Set(keyringService, name, token)
}

func LoadToken(name string) (string, error) {
	return keyring.Get(keyringService, name)
}

func DeleteToken(name string) error {
	return keyring.Delete(keyringService, name)
}
