package schema

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	cnserrors "github.com/NVIDIA/fleet-records/pkg/errors"
	"github.com/NVIDIA/fleet-records/pkg/header"
)

// CatalogKind is the Kind header of a schema catalog document.
const CatalogKind = "SchemaCatalog"

// APIVersion is the catalog document API version.
const APIVersion = header.APIDomain + "/v1alpha1"

// Catalog is a serialized set of schema declarations, the on-disk and
// embedded representation of a registry.
type Catalog struct {
	header.Header `json:",inline" yaml:",inline"`

	Schemas []*Schema `json:"schemas" yaml:"schemas"`
}

var (
	//go:embed data/schemas-v1.yaml
	catalogData []byte

	builtinOnce sync.Once
	cachedReg   *Registry
	cachedErr   error
)

// Builtin loads and caches the registry built from the embedded catalog.
// Because the data is embedded at build time, it is safe (and simpler) to
// parse it once and reuse the in-memory registry for the lifetime of the
// process.
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		cachedReg, cachedErr = LoadCatalog(catalogData)
	})

	if cachedErr != nil {
		return nil, cachedErr
	}
	if cachedReg == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInternal, "builtin schema registry not initialized")
	}
	return cachedReg, nil
}

// LoadCatalog parses a YAML catalog document and registers every schema it
// declares, in document order, into a fresh registry.
func LoadCatalog(data []byte) (*Registry, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidSchema, "failed to parse schema catalog", err)
	}
	if catalog.Kind != "" && catalog.Kind != CatalogKind {
		return nil, cnserrors.Newf(cnserrors.ErrCodeInvalidSchema,
			"unexpected document kind %q, want %q", catalog.Kind, CatalogKind)
	}

	reg := NewRegistry()
	for _, s := range catalog.Schemas {
		if err := reg.Define(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
