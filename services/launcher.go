package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mrnavastar/launchman/api"
	"github.com/mrnavastar/launchman/util"
	"github.com/mrnavastar/launchman/util/fileutils"
	"github.com/pterm/pterm"
)

// Classpath joins every allowed library path and the client jar with
// the platform separator, in descriptor order.
func Classpath(descriptor *api.VersionDescriptor, platform Platform, layout fileutils.Layout) (string, error) {
	var entries []string
	for _, library := range descriptor.Libraries {
		if !EvaluateRules(library.Rules, platform) {
			continue
		}
		path, err := MavenPath(library.Name)
		if err != nil {
			return "", err
		}
		entries = append(entries, filepath.Join(layout.Libraries(), path))
	}
	entries = append(entries, layout.VersionJar(descriptor.Id))

	separator := ":"
	if platform.Os == "windows" {
		separator = ";"
	}
	return strings.Join(entries, separator), nil
}

// BuildArguments assembles the full argv handed to the Java runtime:
// configured JVM args, launch extras, memory flags, natives properties,
// classpath, main class, then the substituted game arguments.
func BuildArguments(descriptor *api.VersionDescriptor, platform Platform, layout fileutils.Layout, settings fileutils.Settings, opts util.LaunchOptions) ([]string, error) {
	var args []string
	args = append(args, settings.JvmArgs...)
	args = append(args, opts.ExtraJvmArgs...)
	args = append(args, fmt.Sprintf("-Xms%dm", settings.MemoryMin))
	args = append(args, fmt.Sprintf("-Xmx%dm", settings.MemoryMax))

	natives := layout.Natives(descriptor.Id)
	if _, err := os.Stat(natives); err == nil {
		args = append(args,
			"-Djava.library.path="+natives,
			"-Djna.tmpdir="+natives,
			"-Dorg.lwjgl.system.SharedLibraryExtractPath="+natives,
			"-Dio.netty.native.workdir="+natives,
		)
	}

	classpath, err := Classpath(descriptor, platform, layout)
	if err != nil {
		return nil, err
	}
	args = append(args, "-cp", classpath)
	args = append(args, descriptor.MainClass)

	args = append(args, GameArguments(descriptor, platform, layout, opts)...)
	args = append(args, opts.ExtraGameArgs...)
	return args, nil
}

// GameArguments expands the structured game argument list, or
// whitespace-splits the legacy flat string, and substitutes every
// placeholder token.
func GameArguments(descriptor *api.VersionDescriptor, platform Platform, layout fileutils.Layout, opts util.LaunchOptions) []string {
	replacer := placeholderReplacer(descriptor, layout, opts)

	var args []string
	if descriptor.Arguments != nil {
		for _, argument := range descriptor.Arguments.Game {
			if !EvaluateRules(argument.Rules, platform) {
				continue
			}
			for _, value := range argument.Values {
				args = append(args, replacer.Replace(value))
			}
		}
		return args
	}

	for _, value := range strings.Fields(descriptor.MinecraftArguments) {
		args = append(args, replacer.Replace(value))
	}
	return args
}

// placeholderReplacer substitutes the launch placeholders. Empty
// account fields fall back to safe values instead of producing
// malformed arguments; each fallback is warned about.
func placeholderReplacer(descriptor *api.VersionDescriptor, layout fileutils.Layout, opts util.LaunchOptions) *strings.Replacer {
	account := opts.Account
	if account.Name == "" {
		pterm.Warning.Println("empty player name, substituting placeholder")
		account.Name = "Player"
	}
	if account.Uuid == "" {
		pterm.Warning.Println("empty uuid, substituting placeholder")
		account.Uuid = "00000000-0000-0000-0000-000000000000"
	}
	if account.AccessToken == "" {
		pterm.Warning.Println("empty access token, substituting placeholder")
		account.AccessToken = "placeholder_token"
	}
	if account.Type == "" {
		account.Type = "msa"
	}

	width, height := opts.Window.Width, opts.Window.Height
	if width == 0 {
		width = 1280
	}
	if height == 0 {
		height = 720
	}

	return strings.NewReplacer(
		"${auth_player_name}", account.Name,
		"${version_name}", descriptor.Id,
		"${game_directory}", layout.Root,
		"${assets_root}", layout.Assets(),
		"${game_assets}", layout.Assets(),
		"${auth_uuid}", account.Uuid,
		"${auth_access_token}", account.AccessToken,
		"${user_type}", account.Type,
		"${version_type}", "release",
		"${resolution_width}", strconv.Itoa(width),
		"${resolution_height}", strconv.Itoa(height),
	)
}

// Prepare resolves a version and brings its instance tree fully up to
// date: client jar, libraries, natives and assets, all verified.
func Prepare(version string, root string, progress fileutils.ProgressFunc) (api.VersionDescriptor, error) {
	settings, err := fileutils.LoadSettings(root)
	if err != nil {
		return api.VersionDescriptor{}, err
	}

	entry, err := api.ResolveVersion(version)
	if err != nil {
		return api.VersionDescriptor{}, err
	}
	descriptor, err := api.FetchDescriptor(entry)
	if err != nil {
		return api.VersionDescriptor{}, err
	}

	layout := fileutils.Layout{Root: root}
	if err := layout.Setup(descriptor.Id); err != nil {
		return api.VersionDescriptor{}, err
	}

	platform := CurrentPlatform()
	tasks, err := Plan(&descriptor, platform, layout)
	if err != nil {
		return api.VersionDescriptor{}, err
	}
	if err := fileutils.DownloadAll(tasks, settings.ConcurrentDownloads, progress); err != nil {
		return api.VersionDescriptor{}, err
	}

	indexData, err := os.ReadFile(layout.AssetIndex(descriptor.AssetIndex.Id))
	if err != nil {
		return api.VersionDescriptor{}, fmt.Errorf("%w: read asset index: %v", util.ErrFilesystem, err)
	}
	assets, err := api.ParseAssetIndex(indexData)
	if err != nil {
		return api.VersionDescriptor{}, err
	}
	if err := fileutils.DownloadAll(PlanAssetObjects(assets, layout), settings.ConcurrentDownloads, progress); err != nil {
		return api.VersionDescriptor{}, err
	}

	if err := ExtractNatives(&descriptor, platform, layout); err != nil {
		return api.VersionDescriptor{}, err
	}
	return descriptor, nil
}

// Launch runs the full pipeline for one version and tracks the spawned
// process in the registry.
func Launch(version string, root string, opts util.LaunchOptions, registry *Registry) (*GameProcess, string, error) {
	descriptor, err := Prepare(version, root, nil)
	if err != nil {
		return nil, "", err
	}

	settings, err := fileutils.LoadSettings(root)
	if err != nil {
		return nil, "", err
	}
	layout := fileutils.Layout{Root: root}
	platform := CurrentPlatform()

	javaPath := settings.JavaPath
	if javaPath == "" {
		javaPath, err = FindJava(RequiredJava(&descriptor))
		if err != nil {
			return nil, "", err
		}
	}

	args, err := BuildArguments(&descriptor, platform, layout, settings, opts)
	if err != nil {
		return nil, "", err
	}

	process, err := Spawn(javaPath, args, layout.Root, opts.Account)
	if err != nil {
		return nil, "", err
	}
	id := registry.Add(process)

	now := time.Now().Format(time.RFC3339)
	profile := util.Profile{
		Name:          descriptor.Id,
		Type:          "custom",
		Icon:          "Crafting_Table",
		LastVersionId: descriptor.Id,
		Created:       now,
		LastUsed:      now,
		JavaArgs:      strings.Join(settings.JvmArgs, " "),
	}
	if err := layout.AddProfile(profile); err != nil {
		pterm.Warning.Println("failed to record launcher profile: " + err.Error())
	}

	pterm.Success.Println("launched " + descriptor.Id + " as " + id)
	return process, id, nil
}
