package api

import (
	"github.com/go-resty/resty/v2"
)

var client = resty.New()

var (
	MANIFEST_URL  = "https://launchermeta.mojang.com/mc/game/version_manifest_v2.json"
	RESOURCES_URL = "https://resources.download.minecraft.net"
)
