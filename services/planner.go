package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mrnavastar/launchman/api"
	"github.com/mrnavastar/launchman/util"
	"github.com/mrnavastar/launchman/util/fileutils"
)

// MavenPath maps group:artifact:version[:classifier] onto the on-disk
// repository layout. The mapping must stay bit-exact with the maven
// layout or the classpath breaks.
func MavenPath(coordinate string) (string, error) {
	parts := strings.Split(coordinate, ":")
	if len(parts) < 3 {
		return "", fmt.Errorf("%w: bad maven coordinate %q", util.ErrParse, coordinate)
	}

	group := strings.ReplaceAll(parts[0], ".", "/")
	artifact, version := parts[1], parts[2]
	name := artifact + "-" + version
	if len(parts) > 3 {
		name += "-" + parts[3]
	}
	return filepath.Join(filepath.FromSlash(group), artifact, version, name+".jar"), nil
}

// NativePath is MavenPath with the native classifier forced onto the
// file name.
func NativePath(coordinate string, classifier string) (string, error) {
	parts := strings.Split(coordinate, ":")
	if len(parts) < 3 {
		return "", fmt.Errorf("%w: bad maven coordinate %q", util.ErrParse, coordinate)
	}

	group := strings.ReplaceAll(parts[0], ".", "/")
	artifact, version := parts[1], parts[2]
	name := artifact + "-" + version + "-" + classifier
	return filepath.Join(filepath.FromSlash(group), artifact, version, name+".jar"), nil
}

// Plan computes the fetch set for a descriptor on a platform: client
// jar first, then every rule-allowed library artifact and its platform
// natives in descriptor order, then the asset index. Asset objects are
// planned separately once the index is on disk.
func Plan(descriptor *api.VersionDescriptor, platform Platform, layout fileutils.Layout) ([]fileutils.FetchTask, error) {
	client := descriptor.Downloads.Client
	tasks := []fileutils.FetchTask{{
		Url:  client.Url,
		Dest: layout.VersionJar(descriptor.Id),
		Sha1: client.Sha1,
		Size: client.Size,
	}}

	for _, library := range descriptor.Libraries {
		if !EvaluateRules(library.Rules, platform) {
			continue
		}
		if library.Downloads == nil {
			continue
		}

		if artifact := library.Downloads.Artifact; artifact != nil {
			path, err := MavenPath(library.Name)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, fileutils.FetchTask{
				Url:  artifact.Url,
				Dest: filepath.Join(layout.Libraries(), path),
				Sha1: artifact.Sha1,
				Size: artifact.Size,
			})
		}

		for classifier, download := range library.Downloads.Classifiers {
			if !NativeClassifier(classifier, platform) {
				continue
			}
			path, err := NativePath(library.Name, classifier)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, fileutils.FetchTask{
				Url:  download.Url,
				Dest: filepath.Join(layout.Libraries(), path),
				Sha1: download.Sha1,
				Size: download.Size,
			})
		}
	}

	index := descriptor.AssetIndex
	tasks = append(tasks, fileutils.FetchTask{
		Url:  index.Url,
		Dest: layout.AssetIndex(index.Id),
		Sha1: index.Sha1,
		Size: index.Size,
	})
	return tasks, nil
}

// PlanAssetObjects emits one content-addressed task per object of a
// parsed asset index.
func PlanAssetObjects(assets []api.AssetObject, layout fileutils.Layout) []fileutils.FetchTask {
	var tasks []fileutils.FetchTask
	for _, asset := range assets {
		tasks = append(tasks, fileutils.FetchTask{
			Url:  api.AssetUrl(asset.Hash),
			Dest: layout.AssetObject(asset.Hash),
			Sha1: asset.Hash,
			Size: asset.Size,
		})
	}
	return tasks
}
