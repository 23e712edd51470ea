package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/tidwall/gjson"

	"github.com/samestrin/mcp-engine/pkg/mcp"
)

// buildRegistry wires the demo tool set onto a fresh Registry. Each tool is
// a typed adaptor over a small third-party library, the way the engine
// expects any real tool server to be built on top of pkg/mcp.
func buildRegistry(cfg config) *mcp.Registry {
	registry := mcp.NewRegistry()
	registry.Add(mathTool(cfg))
	registry.Add(jsonQueryTool())
	registry.Add(diffTool())
	registry.Add(gitignoreCheckTool())
	registry.Add(configConvertTool())
	return registry
}

type mathInput struct {
	Expression string `json:"expression"`
}

func mathTool(cfg config) mcp.Tool {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"expression": {"type": "string"}},
		"required": ["expression"]
	}`)
	return mcp.NewTypedTool[mathInput, mcp.Text[float64]]("math", "Evaluate an arithmetic expression", schema,
		func(in mathInput) (mcp.Text[float64], error) {
			if cfg.MathMaxLen > 0 && len(in.Expression) > cfg.MathMaxLen {
				return mcp.Text[float64]{}, fmt.Errorf("expression exceeds %d characters", cfg.MathMaxLen)
			}
			out, err := expr.Eval(in.Expression, map[string]any{})
			if err != nil {
				return mcp.Text[float64]{}, fmt.Errorf("evaluating expression: %w", err)
			}
			value, ok := toFloat64(out)
			if !ok {
				return mcp.Text[float64]{}, fmt.Errorf("expression did not evaluate to a number, got %T", out)
			}
			return mcp.Text[float64]{Value: value}, nil
		})
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

type jsonQueryInput struct {
	JSON string `json:"json"`
	Path string `json:"path"`
}

func jsonQueryTool() mcp.Tool {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"json": {"type": "string"}, "path": {"type": "string"}},
		"required": ["json", "path"]
	}`)
	return mcp.NewTypedTool[jsonQueryInput, string]("json.query", "Query a JSON document with a gjson path expression", schema,
		func(in jsonQueryInput) (string, error) {
			result := gjson.Get(in.JSON, in.Path)
			if !result.Exists() {
				return "", fmt.Errorf("path %q matched nothing", in.Path)
			}
			return result.String(), nil
		})
}

type diffInput struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

func diffTool() mcp.Tool {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"before": {"type": "string"}, "after": {"type": "string"}},
		"required": ["before", "after"]
	}`)
	return mcp.NewTypedTool[diffInput, string]("diff", "Produce a human-readable diff between two texts", schema,
		func(in diffInput) (string, error) {
			dmp := diffmatchpatch.New()
			diffs := dmp.DiffMain(in.Before, in.After, false)
			return dmp.DiffPrettyText(diffs), nil
		})
}

type gitignoreCheckInput struct {
	Patterns []string `json:"patterns"`
	Path     string   `json:"path"`
}

func gitignoreCheckTool() mcp.Tool {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {
			"patterns": {"type": "array", "items": {"type": "string"}},
			"path": {"type": "string"}
		},
		"required": ["patterns", "path"]
	}`)
	return mcp.NewTypedTool[gitignoreCheckInput, mcp.Text[bool]]("gitignore.check", "Check whether a path matches a set of gitignore patterns", schema,
		func(in gitignoreCheckInput) (mcp.Text[bool], error) {
			gi := ignore.CompileIgnoreLines(in.Patterns...)
			return mcp.Text[bool]{Value: gi.MatchesPath(in.Path)}, nil
		})
}

type configConvertInput struct {
	Data string `json:"data"`
	From string `json:"from"`
	To   string `json:"to"`
}

func configConvertTool() mcp.Tool {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {
			"data": {"type": "string"},
			"from": {"type": "string", "enum": ["toml", "yaml"]},
			"to": {"type": "string", "enum": ["toml", "yaml"]}
		},
		"required": ["data", "from", "to"]
	}`)
	return mcp.NewTypedTool[configConvertInput, string]("config.convert", "Convert a config document between TOML and YAML", schema,
		func(in configConvertInput) (string, error) {
			var doc map[string]any
			switch strings.ToLower(in.From) {
			case "toml":
				if _, err := toml.Decode(in.Data, &doc); err != nil {
					return "", fmt.Errorf("decoding toml: %w", err)
				}
			case "yaml":
				if err := yaml.Unmarshal([]byte(in.Data), &doc); err != nil {
					return "", fmt.Errorf("decoding yaml: %w", err)
				}
			default:
				return "", fmt.Errorf("unsupported source format %q", in.From)
			}

			switch strings.ToLower(in.To) {
			case "toml":
				var buf bytes.Buffer
				if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
					return "", fmt.Errorf("encoding toml: %w", err)
				}
				return buf.String(), nil
			case "yaml":
				out, err := yaml.Marshal(doc)
				if err != nil {
					return "", fmt.Errorf("encoding yaml: %w", err)
				}
				return string(out), nil
			default:
				return "", fmt.Errorf("unsupported target format %q", in.To)
			}
		})
}
