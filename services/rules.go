package services

import (
	"runtime"
	"strings"

	"github.com/mrnavastar/launchman/api"
)

// Platform carries the OS facts rule evaluation runs against. Threading
// it explicitly keeps evaluation testable for every platform from one
// process.
type Platform struct {
	Os   string // windows, osx or linux
	Arch string // x86, x64 or arm64
}

func CurrentPlatform() Platform {
	os := "linux"
	switch runtime.GOOS {
	case "windows":
		os = "windows"
	case "darwin":
		os = "osx"
	}

	arch := runtime.GOARCH
	switch runtime.GOARCH {
	case "386":
		arch = "x86"
	case "amd64":
		arch = "x64"
	}
	return Platform{Os: os, Arch: arch}
}

// EvaluateRules walks an ordered rule list. The first rule whose
// predicate matches decides the outcome; an empty or unmatched list
// allows.
func EvaluateRules(rules []api.Rule, platform Platform) bool {
	for _, rule := range rules {
		if !ruleMatches(rule, platform) {
			continue
		}
		return rule.Action == "allow"
	}
	return true
}

func ruleMatches(rule api.Rule, platform Platform) bool {
	if rule.Os != nil {
		if rule.Os.Name != "" && rule.Os.Name != platform.Os {
			return false
		}
		if rule.Os.Arch != "" && rule.Os.Arch != platform.Arch {
			return false
		}
		// The os.version regex predicate is not evaluated; a features
		// predicate counts as matching.
	}
	return true
}

// NativeClassifier reports whether a classifier key names the native
// bundle for this platform.
func NativeClassifier(classifier string, platform Platform) bool {
	switch platform.Os {
	case "windows":
		return strings.Contains(classifier, "natives-windows")
	case "osx":
		return strings.Contains(classifier, "natives-osx") || strings.Contains(classifier, "natives-macos")
	default:
		return strings.Contains(classifier, "natives-linux")
	}
}
