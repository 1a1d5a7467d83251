package svgpreview

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/flanksource/commons/logger"
	"gopkg.in/yaml.v3"

	"github.com/flanksource/svgpreview/api"
	"github.com/flanksource/svgpreview/formatters"
)

// DefaultConfigFile is picked up from the working directory when no
// configuration file is given.
const DefaultConfigFile = ".svgpreview.yaml"

// LoadConfig reads a RenderConfiguration from a YAML or JSON file. Each key
// is decoded on its own: a value of the wrong type is logged and left at its
// default, and unrecognised values are normalised. Only a file that cannot be
// parsed at all is an error.
func LoadConfig(path string) (api.RenderConfiguration, error) {
	var cfg api.RenderConfiguration
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	// JSON documents are valid YAML
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return cfg.Normalize(), nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return cfg, fmt.Errorf("failed to parse config %s: expected a mapping at line %d", path, doc.Line)
	}

	fields := configFields(&cfg)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		field, ok := fields[key.Value]
		if !ok {
			logger.Debugf("%s:%d: ignoring unknown key %q", path, key.Line, key.Value)
			continue
		}
		if err := value.Decode(field); err != nil {
			logger.Warnf("%s:%d: ignoring %s: %v", path, key.Line, key.Value, err)
		}
	}
	return cfg.Normalize(), nil
}

// configFields maps the yaml key of every field to a pointer into cfg.
func configFields(cfg *api.RenderConfiguration) map[string]any {
	fields := map[string]any{}
	v := reflect.ValueOf(cfg).Elem()
	for i := 0; i < v.NumField(); i++ {
		name, _, _ := strings.Cut(v.Type().Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			fields[name] = v.Field(i).Addr().Interface()
		}
	}
	return fields
}

// ResolveConfig loads the configuration file (or the default one when it
// exists) and overlays the command line options.
func ResolveConfig(path string, opts formatters.RenderOptions) (api.RenderConfiguration, error) {
	cfg := api.RenderConfiguration{}
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		logger.Debugf("Loaded render configuration from %s", path)
		cfg = loaded
	}

	cfg, err := opts.Apply(cfg)
	if err != nil {
		return cfg, err
	}
	return cfg.Normalize(), nil
}
