package config

import (
	"bytes"
	_ "embed"
	"text/template"

	cmtos "github.com/cometbft/cometbft/libs/os"
)

// DefaultDirPerm is used when creating the home directory layout.
const DefaultDirPerm = 0o700

// Field names in config.toml.tpl must stay in sync with the
// mapstructure tags on Config.
//
//go:embed config.toml.tpl
var configTemplateText string

var configTemplate = template.Must(template.New("config").Parse(configTemplateText))

// WriteConfigFile renders cfg through the embedded template and writes it
// to path.
func WriteConfigFile(path string, cfg *Config) {
	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, cfg); err != nil {
		panic(err)
	}
	cmtos.MustWriteFile(path, buf.Bytes(), 0o644)
}
