package api

import (
	"fmt"

	"github.com/mrnavastar/launchman/util"
	"github.com/tidwall/gjson"
)

type AssetObject struct {
	Name string
	Hash string
	Size int64
}

// ParseAssetIndex walks the dynamic-keyed objects map of a fetched asset
// index and returns its content-addressed entries in document order.
// Entries without a usable hash cannot be addressed and are skipped.
func ParseAssetIndex(data []byte) ([]AssetObject, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: asset index is not valid json", util.ErrParse)
	}

	objects := gjson.GetBytes(data, "objects")
	if !objects.Exists() || !objects.IsObject() {
		return nil, fmt.Errorf("%w: asset index has no objects map", util.ErrParse)
	}

	var assets []AssetObject
	objects.ForEach(func(name, object gjson.Result) bool {
		hash := object.Get("hash")
		if hash.Type != gjson.String || len(hash.String()) < 2 {
			return true
		}
		assets = append(assets, AssetObject{
			Name: name.String(),
			Hash: hash.String(),
			Size: object.Get("size").Int(),
		})
		return true
	})
	return assets, nil
}

// AssetUrl builds the content-addressed download URL for an object hash.
func AssetUrl(hash string) string {
	return RESOURCES_URL + "/" + hash[:2] + "/" + hash
}
