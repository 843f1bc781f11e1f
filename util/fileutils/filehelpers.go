package fileutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buger/jsonparser"
	"github.com/mrnavastar/launchman/util"
)

// Layout is the fixed directory tree of one instance. Every path below
// is derived from Root; Setup creates the whole tree before any
// download starts.
type Layout struct {
	Root string
}

func (l Layout) Libraries() string {
	return filepath.Join(l.Root, "libraries")
}

func (l Layout) Assets() string {
	return filepath.Join(l.Root, "assets")
}

func (l Layout) AssetIndex(indexId string) string {
	return filepath.Join(l.Assets(), "indexes", indexId+".json")
}

func (l Layout) AssetObject(hash string) string {
	return filepath.Join(l.Assets(), "objects", hash[:2], hash)
}

func (l Layout) VersionDir(version string) string {
	return filepath.Join(l.Root, "versions", version)
}

func (l Layout) VersionJar(version string) string {
	return filepath.Join(l.VersionDir(version), version+".jar")
}

func (l Layout) Natives(version string) string {
	return filepath.Join(l.VersionDir(version), "natives")
}

func (l Layout) CrashReports() string {
	return filepath.Join(l.Root, "crash-reports")
}

func (l Layout) Logs() string {
	return filepath.Join(l.Root, "logs")
}

func (l Layout) Setup(version string) error {
	dirs := []string{
		l.Root,
		l.Libraries(),
		l.Assets(),
		filepath.Join(l.Assets(), "indexes"),
		filepath.Join(l.Assets(), "objects"),
		l.VersionDir(version),
		l.Natives(version),
		filepath.Join(l.Root, "mods"),
		filepath.Join(l.Root, "resourcepacks"),
		filepath.Join(l.Root, "shaderpacks"),
		filepath.Join(l.Root, "saves"),
		l.Logs(),
		l.CrashReports(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create %s: %v", util.ErrFilesystem, dir, err)
		}
	}
	return nil
}

func (l Layout) profilesFile() string {
	return filepath.Join(l.Root, "launcher_profiles.json")
}

// AddProfile records a launched version in launcher_profiles.json,
// creating the file on first use.
func (l Layout) AddProfile(profile util.Profile) error {
	profiles, err := os.ReadFile(l.profilesFile())
	if os.IsNotExist(err) {
		profiles = []byte(`{"profiles":{}}`)
	} else if err != nil {
		return fmt.Errorf("%w: read profiles: %v", util.ErrFilesystem, err)
	}

	data, err := json.MarshalIndent(profile, "", " ")
	if err != nil {
		return err
	}

	newProfiles, err := jsonparser.Set(profiles, data, "profiles", profile.Name)
	if err != nil {
		return err
	}
	return os.WriteFile(l.profilesFile(), newProfiles, 0644)
}

func (l Layout) RemoveProfile(name string) error {
	profiles, err := os.ReadFile(l.profilesFile())
	if err != nil {
		return fmt.Errorf("%w: read profiles: %v", util.ErrFilesystem, err)
	}

	newProfiles := jsonparser.Delete(profiles, "profiles", name)
	return os.WriteFile(l.profilesFile(), newProfiles, 0644)
}
