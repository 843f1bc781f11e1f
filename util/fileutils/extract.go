package fileutils

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mrnavastar/launchman/util"
)

// ExtractJar unpacks a native jar into destDir, skipping the META-INF
// metadata tree. Entry paths are validated so no entry can escape
// destDir; extracted regular files get executable permission where the
// platform needs it.
func ExtractJar(jarPath string, destDir string) error {
	reader, err := zip.OpenReader(jarPath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", util.ErrFilesystem, jarPath, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name == "META-INF" || strings.HasPrefix(file.Name, "META-INF/") {
			continue
		}

		rel := filepath.FromSlash(file.Name)
		if !filepath.IsLocal(rel) {
			return fmt.Errorf("%w: illegal path %q in %s", util.ErrFilesystem, file.Name, jarPath)
		}
		dest := filepath.Join(destDir, rel)

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return fmt.Errorf("%w: create %s: %v", util.ErrFilesystem, dest, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("%w: create %s: %v", util.ErrFilesystem, filepath.Dir(dest), err)
		}

		if err := extractEntry(file, dest); err != nil {
			return err
		}

		if runtime.GOOS != "windows" {
			if err := os.Chmod(dest, 0755); err != nil {
				return fmt.Errorf("%w: chmod %s: %v", util.ErrFilesystem, dest, err)
			}
		}
	}
	return nil
}

func extractEntry(file *zip.File, dest string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", util.ErrFilesystem, file.Name, err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", util.ErrFilesystem, dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("%w: extract %s: %v", util.ErrFilesystem, dest, err)
	}
	return nil
}
