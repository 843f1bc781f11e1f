package api

import (
	"encoding/json"
	"fmt"

	"github.com/mrnavastar/launchman/util"
)

func FetchManifest() (VersionManifest, error) {
	resp, err := client.R().Get(MANIFEST_URL)
	if err != nil {
		return VersionManifest{}, fmt.Errorf("%w: fetch version manifest: %v", util.ErrNetwork, err)
	}
	if resp.IsError() {
		return VersionManifest{}, fmt.Errorf("%w: fetch version manifest: status %s", util.ErrNetwork, resp.Status())
	}

	var manifest VersionManifest
	if err := json.Unmarshal(resp.Body(), &manifest); err != nil {
		return VersionManifest{}, fmt.Errorf("%w: version manifest: %v", util.ErrParse, err)
	}
	return manifest, nil
}

// ResolveVersion finds the manifest entry whose id equals version.
func ResolveVersion(version string) (VersionEntry, error) {
	manifest, err := FetchManifest()
	if err != nil {
		return VersionEntry{}, err
	}

	for _, entry := range manifest.Versions {
		if entry.Id == version {
			return entry, nil
		}
	}
	return VersionEntry{}, fmt.Errorf("%w: %s", util.ErrVersionNotFound, version)
}

func LatestRelease() (VersionEntry, error) {
	manifest, err := FetchManifest()
	if err != nil {
		return VersionEntry{}, err
	}
	return ResolveVersion(manifest.Latest.Release)
}

func LatestSnapshot() (VersionEntry, error) {
	manifest, err := FetchManifest()
	if err != nil {
		return VersionEntry{}, err
	}
	return ResolveVersion(manifest.Latest.Snapshot)
}

// FetchDescriptor downloads and decodes the version descriptor behind a
// manifest entry. Malformed JSON fails outright, there is no partial
// decode.
func FetchDescriptor(entry VersionEntry) (VersionDescriptor, error) {
	resp, err := client.R().Get(entry.Url)
	if err != nil {
		return VersionDescriptor{}, fmt.Errorf("%w: fetch descriptor for %s: %v", util.ErrNetwork, entry.Id, err)
	}
	if resp.IsError() {
		return VersionDescriptor{}, fmt.Errorf("%w: fetch descriptor for %s: status %s", util.ErrNetwork, entry.Id, resp.Status())
	}

	var descriptor VersionDescriptor
	if err := json.Unmarshal(resp.Body(), &descriptor); err != nil {
		return VersionDescriptor{}, fmt.Errorf("%w: descriptor %s: %v", util.ErrParse, entry.Id, err)
	}
	return descriptor, nil
}
