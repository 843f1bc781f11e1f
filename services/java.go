package services

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/mrnavastar/launchman/api"
	"golang.org/x/mod/semver"
)

// Read-mostly cache of validated executables keyed by major version.
var javaCache = struct {
	sync.RWMutex
	paths map[int]string
}{paths: make(map[int]string)}

// RequiredJava picks the runtime major version a descriptor needs,
// falling back to a version-ordered guess when the descriptor predates
// the javaVersion field.
func RequiredJava(descriptor *api.VersionDescriptor) int {
	if descriptor.JavaVersion != nil && descriptor.JavaVersion.MajorVersion > 0 {
		return descriptor.JavaVersion.MajorVersion
	}

	v := "v" + descriptor.Id
	if !semver.IsValid(v) {
		return 8
	}
	switch {
	case semver.Compare(v, "v1.20") >= 0:
		return 21
	case semver.Compare(v, "v1.17") >= 0:
		return 17
	default:
		return 8
	}
}

// FindJava locates a validated java executable for the major version.
// Install roots are walked with an explicit worklist so deep trees
// cannot blow the stack.
func FindJava(major int) (string, error) {
	javaCache.RLock()
	path, ok := javaCache.paths[major]
	javaCache.RUnlock()
	if ok {
		return path, nil
	}

	executable := "java"
	if runtime.GOOS == "windows" {
		executable = "java.exe"
	}

	worklist := searchRoots()
	for len(worklist) > 0 {
		dir := worklist[0]
		worklist = worklist[1:]

		for _, candidate := range []string{
			filepath.Join(dir, "bin", executable),
			filepath.Join(dir, "Contents", "Home", "bin", executable),
		} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if checkJavaVersion(candidate, major) {
				javaCache.Lock()
				javaCache.paths[major] = candidate
				javaCache.Unlock()
				return candidate, nil
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				worklist = append(worklist, filepath.Join(dir, entry.Name()))
			}
		}
	}
	return "", fmt.Errorf("no java %d runtime found", major)
}

func searchRoots() []string {
	var roots []string
	if home := os.Getenv("JAVA_HOME"); home != "" {
		roots = append(roots, home)
	}
	switch runtime.GOOS {
	case "windows":
		roots = append(roots, `C:\Program Files\Java`, `C:\Program Files (x86)\Java`)
	case "darwin":
		roots = append(roots, "/Library/Java/JavaVirtualMachines", "/opt/homebrew/opt")
	default:
		roots = append(roots, "/usr/lib/jvm", "/usr/java", "/opt/java")
	}
	return roots
}

// checkJavaVersion matches the quoted version in `java -version` output
// ("21.0.1" or the legacy "1.8.0" form).
func checkJavaVersion(path string, major int) bool {
	output, err := exec.Command(path, "-version").CombinedOutput()
	if err != nil {
		return false
	}
	line := strings.SplitN(string(output), "\n", 2)[0]
	return strings.Contains(line, fmt.Sprintf("\"%d", major)) ||
		strings.Contains(line, fmt.Sprintf("\"1.%d", major))
}
