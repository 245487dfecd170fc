// Package loader turns raw input (a file, stdin, or an in-memory string)
// into a document tree. The format is auto-detected: JSON, YAML (single or
// multi-document), newline-delimited JSON, or TOML.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jvx/pkg/value"
)

// ErrNoInput is returned when neither a file argument nor piped stdin is
// available; the CLI shows help in that case.
var ErrNoInput = errors.New("no input provided")

// LoadData parses input into one document tree per contained document.
// Detection order, most restrictive first: multi-document YAML, NDJSON,
// TOML, JSON, then single-document YAML as the fallback.
func LoadData(input string) ([]*value.Value, error) {
	return loadData(input, logr.Discard())
}

func loadData(input string, lgr logr.Logger) ([]*value.Value, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		lgr.V(1).Info("detected multi-document YAML")
		return loadMultiDocYAML(input)
	}

	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		lgr.V(1).Info("detected NDJSON", "lines", len(lines))
		return loadNDJSON(lines)
	}

	// TOML before JSON: a TOML [section] header would otherwise look like
	// the start of a JSON array.
	if isLikelyTOML(input) {
		lgr.V(1).Info("detected TOML")
		return loadTOML(input)
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		doc, err := value.ParseJSON([]byte(input))
		if err != nil {
			// Some YAML flow documents also start with { or [.
			lgr.V(1).Info("JSON parse failed, retrying as YAML", "error", err.Error())
			if doc, yerr := value.ParseYAML([]byte(input)); yerr == nil {
				return []*value.Value{doc}, nil
			}
			return nil, err
		}
		return []*value.Value{doc}, nil
	}

	doc, err := value.ParseYAML([]byte(input))
	if err != nil {
		return nil, err
	}
	return []*value.Value{doc}, nil
}

// LoadRoot parses input into a single root. Multi-document inputs become an
// array root so the whole input stays addressable through one tree.
func LoadRoot(input string) (*value.Value, error) {
	return LoadRootWithLogger(input, logr.Discard())
}

// LoadRootWithLogger is LoadRoot with a logger recording format detection
// and fallback parse attempts.
func LoadRootWithLogger(input string, lgr logr.Logger) (*value.Value, error) {
	docs, err := loadData(input, lgr)
	if err != nil {
		return nil, err
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return value.NewArray(docs...), nil
}

// LoadRootBytes parses input bytes into a single root.
func LoadRootBytes(data []byte) (*value.Value, error) {
	return LoadRoot(string(data))
}

// LoadRootBytesWithLogger is LoadRootBytes with detection logging.
func LoadRootBytesWithLogger(data []byte, lgr logr.Logger) (*value.Value, error) {
	return LoadRootWithLogger(string(data), lgr)
}

// LoadFile reads and parses a file. A recognized extension pins the format;
// anything else goes through content detection.
func LoadFile(path string) (*value.Value, error) {
	return LoadFileWithLogger(path, logr.Discard())
}

// LoadFileWithLogger is LoadFile with detection logging.
func LoadFileWithLogger(path string, lgr logr.Logger) (*value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return value.ParseJSON(data)
	case ".toml":
		docs, err := loadTOML(string(data))
		if err != nil {
			return nil, err
		}
		return docs[0], nil
	case ".yaml", ".yml":
		// Still honour multi-document streams.
		return LoadRootBytesWithLogger(data, lgr)
	default:
		lgr.V(1).Info("unrecognized extension, using content detection", "path", path)
		return LoadRootBytesWithLogger(data, lgr)
	}
}

// ReadInput resolves the CLI input source: the named file when given,
// otherwise stdin when it is piped. ErrNoInput signals that neither was
// provided.
func ReadInput(args []string, stdin io.Reader, stdinPiped bool) ([]byte, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return data, nil
	}
	if !stdinPiped {
		return nil, ErrNoInput
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoInput
	}
	return data, nil
}

func loadMultiDocYAML(input string) ([]*value.Value, error) {
	var docs []*value.Value
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		doc, err := value.FromYAMLNode(&node)
		if err != nil {
			return nil, err
		}
		if doc.Kind() != value.Null {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	}
	return docs, nil
}

// loadNDJSON parses one JSON document per line. Lines that are not valid
// JSON are kept as plain strings, matching how log streams mix formats.
func loadNDJSON(lines []string) ([]*value.Value, error) {
	docs := make([]*value.Value, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc, err := value.ParseJSON([]byte(line))
		if err != nil {
			docs = append(docs, value.NewString(line))
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return docs, nil
}

func loadTOML(input string) ([]*value.Value, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	doc, err := value.FromGo(normalizeTOML(data))
	if err != nil {
		return nil, fmt.Errorf("convert TOML: %w", err)
	}
	return []*value.Value{doc}, nil
}

// normalizeTOML rewrites go-toml's typed output (map[string]any with nested
// []map[string]any table arrays) into the plain shapes FromGo accepts.
func normalizeTOML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeTOML(e)
		}
		return out
	case []map[string]any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			out = append(out, normalizeTOML(e))
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			out = append(out, normalizeTOML(e))
		}
		return out
	default:
		return v
	}
}

// isLikelyNDJSON: a majority of non-empty lines must positively parse as
// JSON documents. The majority vote keeps YAML list files (many "- item"
// lines) from being misclassified.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			if json.Valid([]byte(trimmed)) {
				jsonCount++
			}
		}
	}
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

var (
	// TOML section headers: [server], [[items]], [database."host.name"].
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// TOML key = value (not the YAML "key: value" form).
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}
