package research

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadFile reads benchmark data from a YAML file. An empty path returns
// empty data, which resolves every lookup to its fallback.
func LoadFile(path string) (Data, error) {
	if path == "" {
		return Data{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "research: read %s", path)
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "research: parse %s", path)
	}
	zap.L().Debug("research: loaded benchmark data",
		zap.String("path", path),
		zap.Int("keys", len(d)),
	)
	return d, nil
}

// Parse decodes YAML (or JSON, which is valid YAML) benchmark data.
func Parse(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, eris.Wrap(err, "research: unmarshal")
	}
	if d == nil {
		d = Data{}
	}
	return d, nil
}

// Merge returns a copy of base with every key in overlay applied on top.
func Merge(base, overlay Data) Data {
	out := make(Data, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
