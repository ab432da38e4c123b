package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gedvault/gedvault/pkg/errors"
)

// Config is the optional TOML configuration file. All fields are
// optional; set fields override pipeline defaults but not explicit
// command-line flags.
//
//	[output]
//	canvas_file = "Family Tree.canvas"
//	index_file = "Index.md"
//	media_dir = "media"
//
//	[layout]
//	node_width = 250
//	generation_gap = 400
type Config struct {
	Output struct {
		CanvasFile string `toml:"canvas_file"`
		IndexFile  string `toml:"index_file"`
		MediaDir   string `toml:"media_dir"`
	} `toml:"output"`

	Layout struct {
		NodeWidth   int `toml:"node_width"`
		NodeHeight  int `toml:"node_height"`
		ImageHeight int `toml:"image_height"`
		GenGap      int `toml:"generation_gap"`
		SiblingGap  int `toml:"sibling_gap"`
		CoupleGap   int `toml:"couple_gap"`
		TreeSpacing int `toml:"tree_spacing"`
	} `toml:"layout"`
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	return &cfg, nil
}

// Apply copies set config values into opts, leaving already-set option
// fields alone so flags win over the file.
func (c *Config) Apply(opts *Options) {
	if opts.CanvasFile == "" && c.Output.CanvasFile != "" {
		opts.CanvasFile = c.Output.CanvasFile
	}
	if opts.IndexFile == "" && c.Output.IndexFile != "" {
		opts.IndexFile = c.Output.IndexFile
	}
	if opts.MediaDir == "" && c.Output.MediaDir != "" {
		opts.MediaDir = c.Output.MediaDir
	}

	applyInt := func(dst *int, v int) {
		if *dst == 0 && v != 0 {
			*dst = v
		}
	}
	applyInt(&opts.Layout.NodeWidth, c.Layout.NodeWidth)
	applyInt(&opts.Layout.NodeHeight, c.Layout.NodeHeight)
	applyInt(&opts.Layout.ImageHeight, c.Layout.ImageHeight)
	applyInt(&opts.Layout.GenGap, c.Layout.GenGap)
	applyInt(&opts.Layout.SiblingGap, c.Layout.SiblingGap)
	applyInt(&opts.Layout.CoupleGap, c.Layout.CoupleGap)
	applyInt(&opts.Layout.TreeSpacing, c.Layout.TreeSpacing)
}
