package services

import (
	"path/filepath"
	"testing"

	"github.com/mrnavastar/launchman/api"
	"github.com/mrnavastar/launchman/util/fileutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptor() *api.VersionDescriptor {
	return &api.VersionDescriptor{
		Id:        "1.20.1",
		MainClass: "net.minecraft.client.main.Main",
		Downloads: api.Downloads{
			Client: api.DownloadInfo{Url: "https://example.com/client.jar", Sha1: "c1", Size: 100},
		},
		AssetIndex: api.AssetIndex{
			Id:   "5",
			Url:  "https://example.com/5.json",
			Sha1: "a1",
			Size: 10,
		},
		Libraries: []api.Library{
			{
				Name: "com.mojang:patchy:1.3.9",
				Downloads: &api.LibraryDownloads{
					Artifact: &api.DownloadInfo{Url: "https://example.com/patchy.jar", Sha1: "l1", Size: 5},
				},
			},
			{
				Name: "ca.weblite:java-objc-bridge:1.0.0",
				Rules: []api.Rule{
					{Action: "allow", Os: &api.OsRule{Name: "osx"}},
					{Action: "disallow"},
				},
				Downloads: &api.LibraryDownloads{
					Artifact: &api.DownloadInfo{Url: "https://example.com/objc.jar", Sha1: "l2", Size: 5},
				},
			},
			{
				Name:  "org.lwjgl:lwjgl:3.3.1",
				Rules: []api.Rule{{Action: "disallow", Os: &api.OsRule{Name: "osx"}}},
				Downloads: &api.LibraryDownloads{
					Artifact: &api.DownloadInfo{Url: "https://example.com/lwjgl.jar", Sha1: "l3", Size: 5},
					Classifiers: map[string]api.DownloadInfo{
						"natives-linux":   {Url: "https://example.com/lwjgl-linux.jar", Sha1: "n1", Size: 5},
						"natives-windows": {Url: "https://example.com/lwjgl-windows.jar", Sha1: "n2", Size: 5},
					},
				},
			},
		},
	}
}

func TestMavenPath(t *testing.T) {
	path, err := MavenPath("com.mojang:patchy:1.3.9")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("com", "mojang", "patchy", "1.3.9", "patchy-1.3.9.jar"), path)

	path, err = MavenPath("org.lwjgl:lwjgl:3.3.1:natives-linux")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("org", "lwjgl", "lwjgl", "3.3.1", "lwjgl-3.3.1-natives-linux.jar"), path)

	_, err = MavenPath("not-a-coordinate")
	assert.Error(t, err)
}

func TestNativePath(t *testing.T) {
	path, err := NativePath("org.lwjgl:lwjgl:3.3.1", "natives-linux")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("org", "lwjgl", "lwjgl", "3.3.1", "lwjgl-3.3.1-natives-linux.jar"), path)
}

func TestPlanLinux(t *testing.T) {
	layout := fileutils.Layout{Root: "/mc"}
	tasks, err := Plan(testDescriptor(), Platform{Os: "linux", Arch: "x64"}, layout)
	require.NoError(t, err)

	// Client jar first, asset index last.
	require.Len(t, tasks, 5)
	assert.Equal(t, layout.VersionJar("1.20.1"), tasks[0].Dest)
	assert.Equal(t, "c1", tasks[0].Sha1)
	assert.Equal(t, layout.AssetIndex("5"), tasks[len(tasks)-1].Dest)

	dests := make([]string, 0, len(tasks))
	for _, task := range tasks {
		dests = append(dests, task.Dest)
	}
	assert.Contains(t, dests, filepath.Join("/mc", "libraries", "com", "mojang", "patchy", "1.3.9", "patchy-1.3.9.jar"))
	assert.Contains(t, dests, filepath.Join("/mc", "libraries", "org", "lwjgl", "lwjgl", "3.3.1", "lwjgl-3.3.1.jar"))
	assert.Contains(t, dests, filepath.Join("/mc", "libraries", "org", "lwjgl", "lwjgl", "3.3.1", "lwjgl-3.3.1-natives-linux.jar"))
	// The osx-gated library is skipped and the windows natives stay out.
	assert.NotContains(t, dests, filepath.Join("/mc", "libraries", "ca", "weblite", "java-objc-bridge", "1.0.0", "java-objc-bridge-1.0.0.jar"))
	assert.NotContains(t, dests, filepath.Join("/mc", "libraries", "org", "lwjgl", "lwjgl", "3.3.1", "lwjgl-3.3.1-natives-windows.jar"))
}

func TestPlanOsx(t *testing.T) {
	layout := fileutils.Layout{Root: "/mc"}
	tasks, err := Plan(testDescriptor(), Platform{Os: "osx", Arch: "arm64"}, layout)
	require.NoError(t, err)

	dests := make([]string, 0, len(tasks))
	for _, task := range tasks {
		dests = append(dests, task.Dest)
	}
	// The lwjgl disallow rule now matches; the allow-osx library survives.
	assert.Contains(t, dests, filepath.Join("/mc", "libraries", "ca", "weblite", "java-objc-bridge", "1.0.0", "java-objc-bridge-1.0.0.jar"))
	assert.NotContains(t, dests, filepath.Join("/mc", "libraries", "org", "lwjgl", "lwjgl", "3.3.1", "lwjgl-3.3.1.jar"))
}

func TestPlanAssetObjects(t *testing.T) {
	layout := fileutils.Layout{Root: "/mc"}
	hash := "bdf48ef6b5d0d23bbb02e17d04865216179f510a"
	tasks := PlanAssetObjects([]api.AssetObject{{Name: "icons/icon_16x16.png", Hash: hash, Size: 3665}}, layout)

	require.Len(t, tasks, 1)
	assert.Equal(t, api.AssetUrl(hash), tasks[0].Url)
	assert.Equal(t, layout.AssetObject(hash), tasks[0].Dest)
	assert.Equal(t, hash, tasks[0].Sha1)
	assert.Equal(t, int64(3665), tasks[0].Size)
}
