package services

import (
	"testing"

	"github.com/mrnavastar/launchman/api"
	"github.com/stretchr/testify/assert"
)

func TestRequiredJavaExplicit(t *testing.T) {
	descriptor := &api.VersionDescriptor{
		Id:          "1.20.1",
		JavaVersion: &api.JavaVersion{Component: "java-runtime-gamma", MajorVersion: 17},
	}
	assert.Equal(t, 17, RequiredJava(descriptor))
}

func TestRequiredJavaFallback(t *testing.T) {
	cases := map[string]int{
		"1.20.1": 21,
		"1.20":   21,
		"1.18":   17,
		"1.17.1": 17,
		"1.16.5": 8,
		"1.8.9":  8,
		"23w31a": 8,
	}
	for id, major := range cases {
		assert.Equal(t, major, RequiredJava(&api.VersionDescriptor{Id: id}), id)
	}
}
