package services

import (
	"os"
	"path/filepath"

	"github.com/mrnavastar/launchman/api"
	"github.com/mrnavastar/launchman/util/fileutils"
)

// ExtractNatives unpacks every fetched native bundle for the platform
// into the per-version natives directory. The first failing archive
// aborts the whole launch, a partial native set never launches.
func ExtractNatives(descriptor *api.VersionDescriptor, platform Platform, layout fileutils.Layout) error {
	nativesDir := layout.Natives(descriptor.Id)

	for _, library := range descriptor.Libraries {
		if !EvaluateRules(library.Rules, platform) {
			continue
		}
		if library.Downloads == nil {
			continue
		}

		for classifier := range library.Downloads.Classifiers {
			if !NativeClassifier(classifier, platform) {
				continue
			}
			path, err := NativePath(library.Name, classifier)
			if err != nil {
				return err
			}

			jar := filepath.Join(layout.Libraries(), path)
			if _, err := os.Stat(jar); os.IsNotExist(err) {
				continue
			}
			if err := fileutils.ExtractJar(jar, nativesDir); err != nil {
				return err
			}
		}
	}
	return nil
}
