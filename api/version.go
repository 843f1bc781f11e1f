package api

import (
	"encoding/json"
	"time"
)

type VersionManifest struct {
	Latest struct {
		Release  string
		Snapshot string
	}
	Versions []VersionEntry
}

type VersionEntry struct {
	Id              string
	Type            string
	Url             string
	Time            time.Time
	ReleaseTime     time.Time
	Sha1            string
	ComplianceLevel int
}

// VersionDescriptor is the per-version JSON document. It is fetched at
// most once per launch attempt and never mutated after decoding.
type VersionDescriptor struct {
	Id                 string
	Type               string
	MainClass          string
	Arguments          *Arguments
	MinecraftArguments string
	AssetIndex         AssetIndex
	Assets             string
	Downloads          Downloads
	JavaVersion        *JavaVersion
	Libraries          []Library
}

type Arguments struct {
	Game []Argument
	Jvm  []Argument
}

type AssetIndex struct {
	Id        string
	Sha1      string
	Size      int64
	TotalSize int64
	Url       string
}

type Downloads struct {
	Client DownloadInfo
	Server *DownloadInfo
}

type DownloadInfo struct {
	Sha1 string
	Size int64
	Url  string
}

type JavaVersion struct {
	Component    string
	MajorVersion int
}

// Library is one maven-coordinate entry of the descriptor. Rules gate
// whether it applies on a given platform; Classifiers carry the
// platform-specific native bundles.
type Library struct {
	Name      string
	Rules     []Rule
	Downloads *LibraryDownloads
	Natives   map[string]string
}

type LibraryDownloads struct {
	Artifact    *DownloadInfo
	Classifiers map[string]DownloadInfo
}

type Rule struct {
	Action   string
	Os       *OsRule
	Features map[string]bool
}

type OsRule struct {
	Name    string
	Version string
	Arch    string
}

// Argument decodes either a bare string or the conditional
// {rules, value} form, where value itself may be a string or an array.
type Argument struct {
	Values []string
	Rules  []Rule
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		a.Values = []string{plain}
		a.Rules = nil
		return nil
	}

	var conditional struct {
		Rules []Rule
		Value stringList
	}
	if err := json.Unmarshal(data, &conditional); err != nil {
		return err
	}
	a.Values = conditional.Value
	a.Rules = conditional.Rules
	return nil
}

type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = []string{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}
