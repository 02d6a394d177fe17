package noise

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	schemaBase        = "https://worldgen.local/schema/"
	paramSchemaURL    = schemaBase + "noise.schema.json"
	registrySchemaURL = schemaBase + "noise_params.schema.json"
	defaultNamespace  = "minecraft"
)

//go:embed data/noise_params.json data/noise.schema.json data/noise_params.schema.json
var dataFS embed.FS

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Params configures one double Perlin noise.
type Params struct {
	FirstOctave int       `json:"firstOctave"`
	Amplitudes  []float64 `json:"amplitudes"`
}

// Registry maps namespaced noise ids ("minecraft:temperature") to parameters.
type Registry map[string]Params

// Get returns the parameters for id or panics. A missing noise is a malformed router.
func (r Registry) Get(id string) Params {
	p, ok := r[id]
	if !ok {
		panic(fmt.Sprintf("noise: unknown noise %q", id))
	}
	return p
}

// IDs returns the registered ids in sorted order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type schemas struct {
	param    *jsonschema.Schema
	registry *jsonschema.Schema
}

var loadSchemas = sync.OnceValues(func() (schemas, error) {
	c := jsonschema.NewCompiler()
	for url, name := range map[string]string{
		paramSchemaURL:    "data/noise.schema.json",
		registrySchemaURL: "data/noise_params.schema.json",
	} {
		raw, err := dataFS.ReadFile(name)
		if err != nil {
			return schemas{}, fmt.Errorf("read %s: %w", name, err)
		}
		if err := c.AddResource(url, bytes.NewReader(raw)); err != nil {
			return schemas{}, fmt.Errorf("add schema %s: %w", name, err)
		}
	}
	param, err := c.Compile(paramSchemaURL)
	if err != nil {
		return schemas{}, fmt.Errorf("compile noise schema: %w", err)
	}
	registry, err := c.Compile(registrySchemaURL)
	if err != nil {
		return schemas{}, fmt.Errorf("compile registry schema: %w", err)
	}
	return schemas{param: param, registry: registry}, nil
})

var defaultRegistry = sync.OnceValues(func() (Registry, error) {
	raw, err := dataFS.ReadFile("data/noise_params.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded noise params: %w", err)
	}
	return ParseRegistry(raw)
})

// DefaultParams returns a copy of the embedded vanilla noise parameters.
func DefaultParams() Registry {
	reg, err := defaultRegistry()
	if err != nil {
		panic(fmt.Sprintf("noise: embedded parameters are invalid: %v", err))
	}
	out := make(Registry, len(reg))
	for k, v := range reg {
		out[k] = v
	}
	return out
}

// ParseRegistry validates and decodes a registry document.
func ParseRegistry(raw []byte) (Registry, error) {
	s, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse noise registry: %w", err)
	}
	if err := s.registry.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate noise registry: %w", err)
	}
	var reg Registry
	if err := json.Unmarshal(raw, &reg); err != nil {
		return nil, fmt.Errorf("decode noise registry: %w", err)
	}
	return reg, nil
}

// ParseParams validates and decodes a single noise parameter document.
func ParseParams(raw []byte) (Params, error) {
	s, err := loadSchemas()
	if err != nil {
		return Params{}, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Params{}, fmt.Errorf("parse noise params: %w", err)
	}
	if err := s.param.Validate(doc); err != nil {
		return Params{}, fmt.Errorf("validate noise params: %w", err)
	}
	var p Params
	if err := json.Unmarshal(raw, &p); err != nil {
		return Params{}, fmt.Errorf("decode noise params: %w", err)
	}
	return p, nil
}

// LoadParamsDir overlays every <name>.json in dir onto base as "minecraft:<name>".
// This is the layout of the vanilla data pack's worldgen/noise directory.
func LoadParamsDir(base Registry, dir string) (Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read noise dir %s: %w", dir, err)
	}
	out := make(Registry, len(base)+len(entries))
	for k, v := range base {
		out[k] = v
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		p, err := ParseParams(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out[defaultNamespace+":"+strings.TrimSuffix(e.Name(), ".json")] = p
	}
	return out, nil
}
