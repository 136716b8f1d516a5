package core

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	opts "github.com/goliatone/go-options"
	"gopkg.in/yaml.v3"
)

type StaticRawConfigLoader struct {
	Values map[string]any
}

func (l StaticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// YAMLFileConfigLoader reads a config file. A missing file yields an empty
// map when Optional is set.
type YAMLFileConfigLoader struct {
	Path     string
	Optional bool
}

func (l YAMLFileConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	path := strings.TrimSpace(l.Path)
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if l.Optional && os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("core: read config file %q: %w", path, err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("core: invalid config file %q: %w", path, err)
	}
	return out, nil
}

type envBinding struct {
	keys    []string
	section string
	field   string
	integer bool
}

var envBindings = []envBinding{
	{keys: []string{"LATTICE_SERVICE_NAME"}, field: "service_name"},
	{keys: []string{"LATTICE_REGION", "AWS_REGION", "AWS_DEFAULT_REGION"}, field: "region"},
	{keys: []string{"LATTICE_PAGE_SIZE"}, section: "resolve", field: "page_size", integer: true},
	{keys: []string{"LATTICE_DEFAULT_KIND"}, section: "resolve", field: "default_kind"},
	{keys: []string{"LATTICE_SIGNING_SERVICE"}, section: "forward", field: "signing_service"},
	{keys: []string{"LATTICE_FORWARD_TIMEOUT_SECONDS"}, section: "forward", field: "timeout_seconds", integer: true},
	{keys: []string{"LATTICE_MAX_RESPONSE_BODY_BYTES"}, section: "forward", field: "max_response_body_bytes", integer: true},
	{keys: []string{"LATTICE_CONTENT_TYPE"}, section: "forward", field: "content_type"},
	{keys: []string{"LATTICE_DEFAULT_BODY"}, section: "forward", field: "default_body"},
}

// EnvConfigLoader maps LATTICE_* variables (and the Lambda provided
// AWS_REGION) onto the config tree.
type EnvConfigLoader struct {
	Lookup func(key string) (string, bool)
}

func (l EnvConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	lookup := l.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	out := map[string]any{}
	for _, binding := range envBindings {
		raw, key, ok := firstEnv(lookup, binding.keys)
		if !ok {
			continue
		}
		var value any = raw
		if binding.integer {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("core: invalid integer in %s: %w", key, err)
			}
			value = parsed
		}
		if binding.section == "" {
			out[binding.field] = value
			continue
		}
		section, _ := out[binding.section].(map[string]any)
		if section == nil {
			section = map[string]any{}
			out[binding.section] = section
		}
		section[binding.field] = value
	}
	return out, nil
}

func firstEnv(lookup func(string) (string, bool), keys []string) (string, string, bool) {
	for _, key := range keys {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed, key, true
		}
	}
	return "", "", false
}

// ChainRawConfigLoader stacks loaders as go-options layers. Later loaders
// get a stronger scope, so environment placed after a file wins key by key.
type ChainRawConfigLoader []RawConfigLoader

func (c ChainRawConfigLoader) LoadRaw(ctx context.Context) (map[string]any, error) {
	layers := make([]opts.Layer[map[string]any], 0, len(c))
	for idx, loader := range c {
		if loader == nil {
			continue
		}
		raw, err := loader.LoadRaw(ctx)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("source_%d", idx)
		layers = append(layers, opts.NewLayer(
			opts.NewScope(name, (idx+1)*10),
			raw,
			opts.WithSnapshotID[map[string]any](name),
		))
	}
	if len(layers) == 0 {
		return map[string]any{}, nil
	}
	stack, err := opts.NewStack(layers...)
	if err != nil {
		return nil, fmt.Errorf("core: config layer stack failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, fmt.Errorf("core: config layer merge failed: %w", err)
	}
	if merged.Value == nil {
		return map[string]any{}, nil
	}
	return merged.Value, nil
}
