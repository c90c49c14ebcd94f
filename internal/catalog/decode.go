package catalog

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/incode/internal/model"
)

//go:embed default.toml
var defaultCatalog string

// Default returns the built-in catalog.
func Default() (model.Catalog, error) {
	var cat model.Catalog
	if _, err := toml.Decode(defaultCatalog, &cat); err != nil {
		return model.Catalog{}, fmt.Errorf("failed to decode default catalog: %w", err)
	}
	if err := Normalize(&cat); err != nil {
		return model.Catalog{}, fmt.Errorf("invalid default catalog: %w", err)
	}
	return cat, nil
}

// LoadFile reads a catalog from a .toml or .xlsx file.
func LoadFile(path string) (model.Catalog, error) {
	var (
		cat model.Catalog
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cat, err = decodeTOMLFile(path)
	case ".xlsx":
		cat, err = decodeXLSXFile(path)
	default:
		return model.Catalog{}, fmt.Errorf("unsupported catalog format %q (want .toml or .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		return model.Catalog{}, err
	}
	if err := Normalize(&cat); err != nil {
		return model.Catalog{}, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return cat, nil
}

func decodeTOMLFile(path string) (model.Catalog, error) {
	var cat model.Catalog
	if _, err := toml.DecodeFile(path, &cat); err != nil {
		return model.Catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return cat, nil
}
