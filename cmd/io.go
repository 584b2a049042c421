package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// readRequest decodes a JSON or YAML request file, validates it against
// schema, and stores it in v. Format follows the extension; "-" reads JSON
// from stdin.
func readRequest(path string, stdin io.Reader, schema string, v any) error {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return eris.Wrapf(err, "read request %s", path)
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &doc)
	default:
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return eris.Wrapf(err, "decode request %s", path)
	}

	if err := validateDocument(schema, doc); err != nil {
		return eris.Wrapf(err, "request %s", path)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return eris.Wrapf(err, "encode request %s", path)
	}
	return eris.Wrapf(json.Unmarshal(normalized, v), "decode request %s", path)
}

// writeOutput encodes v as indented JSON or YAML.
func writeOutput(w io.Writer, v any, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		return eris.Wrap(enc.Close(), "encode yaml")
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "encode json")
	default:
		return eris.Errorf("unknown output format %q", format)
	}
}
