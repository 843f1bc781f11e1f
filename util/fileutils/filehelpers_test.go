package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/buger/jsonparser"
	"github.com/mrnavastar/launchman/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutPaths(t *testing.T) {
	layout := Layout{Root: "/mc"}

	assert.Equal(t, filepath.Join("/mc", "libraries"), layout.Libraries())
	assert.Equal(t, filepath.Join("/mc", "assets", "indexes", "5.json"), layout.AssetIndex("5"))
	assert.Equal(t, filepath.Join("/mc", "assets", "objects", "bd", "bdf48ef6"), layout.AssetObject("bdf48ef6"))
	assert.Equal(t, filepath.Join("/mc", "versions", "1.20.1", "1.20.1.jar"), layout.VersionJar("1.20.1"))
	assert.Equal(t, filepath.Join("/mc", "versions", "1.20.1", "natives"), layout.Natives("1.20.1"))
}

func TestLayoutSetup(t *testing.T) {
	layout := Layout{Root: t.TempDir()}
	require.NoError(t, layout.Setup("1.20.1"))

	for _, dir := range []string{
		layout.Libraries(),
		filepath.Join(layout.Assets(), "indexes"),
		filepath.Join(layout.Assets(), "objects"),
		layout.Natives("1.20.1"),
		filepath.Join(layout.Root, "mods"),
		layout.Logs(),
		layout.CrashReports(),
	} {
		assert.DirExists(t, dir)
	}

	// Setup is idempotent.
	require.NoError(t, layout.Setup("1.20.1"))
}

func TestProfiles(t *testing.T) {
	layout := Layout{Root: t.TempDir()}

	require.NoError(t, layout.AddProfile(util.Profile{
		Name:          "1.20.1",
		Type:          "custom",
		LastVersionId: "1.20.1",
	}))

	data, err := os.ReadFile(filepath.Join(layout.Root, "launcher_profiles.json"))
	require.NoError(t, err)
	version, err := jsonparser.GetString(data, "profiles", "1.20.1", "lastVersionId")
	require.NoError(t, err)
	assert.Equal(t, "1.20.1", version)

	require.NoError(t, layout.RemoveProfile("1.20.1"))
	data, err = os.ReadFile(filepath.Join(layout.Root, "launcher_profiles.json"))
	require.NoError(t, err)
	_, err = jsonparser.GetString(data, "profiles", "1.20.1", "lastVersionId")
	assert.Error(t, err)
}
