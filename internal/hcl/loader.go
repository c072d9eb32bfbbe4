// Package hcl is the HCL-specific implementation of the config.Loader
// interface. It discovers .hcl files, decodes their blocks, and merges them
// over the built-in defaults.
package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/lifegrid/internal/config"
	"github.com/vk/lifegrid/internal/ctxlog"
	"github.com/vk/lifegrid/internal/fsutil"
)

// DefaultFileName is picked up from the working directory when no --config
// path is given.
const DefaultFileName = "lifegrid.hcl"

// Loader loads the lifegrid configuration from HCL files.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the schema used to decode the top-level blocks of any file.
// Attribute fields are pointers so absent values can be told apart from
// zero values when merging over the defaults.
type fileRoot struct {
	Server   *serverBlock    `hcl:"server,block"`
	Board    *boardBlock     `hcl:"board,block"`
	Log      *logBlock       `hcl:"log,block"`
	Patterns []*patternBlock `hcl:"pattern,block"`
}

type serverBlock struct {
	Port      *int    `hcl:"port,optional"`
	StaticDir *string `hcl:"static_dir,optional"`
}

type boardBlock struct {
	Rows            *int     `hcl:"rows,optional"`
	Columns         *int     `hcl:"columns,optional"`
	MaxRows         *int     `hcl:"max_rows,optional"`
	MaxColumns      *int     `hcl:"max_columns,optional"`
	LiveProbability *float64 `hcl:"p_live,optional"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// patternBlock keeps its body undecoded; the cells attribute is translated
// through cty by hand so we can validate the coordinate pairs.
type patternBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Load reads the file or directory at path and returns the merged, validated
// model. An empty path loads ./lifegrid.hcl when present and plain defaults
// otherwise. Later files win over earlier ones; pattern blocks shadow the
// built-in pattern of the same name.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.Default()

	if path == "" {
		if _, err := os.Stat(DefaultFileName); err != nil {
			logger.Debug("No configuration file found, using defaults.")
			if err := model.Validate(); err != nil {
				return nil, err
			}
			return model, nil
		}
		path = DefaultFileName
	}

	files, err := fsutil.ExpandPath(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := mergeRoot(model, &root); err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

// mergeRoot overlays every attribute present in root onto the model.
func mergeRoot(model *config.Model, root *fileRoot) error {
	if s := root.Server; s != nil {
		if s.Port != nil {
			model.Server.Port = *s.Port
		}
		if s.StaticDir != nil {
			model.Server.StaticDir = *s.StaticDir
		}
	}
	if b := root.Board; b != nil {
		if b.Rows != nil {
			model.Board.Rows = *b.Rows
		}
		if b.Columns != nil {
			model.Board.Columns = *b.Columns
		}
		if b.MaxRows != nil {
			model.Board.MaxRows = *b.MaxRows
		}
		if b.MaxColumns != nil {
			model.Board.MaxColumns = *b.MaxColumns
		}
		if b.LiveProbability != nil {
			model.Board.LiveProbability = *b.LiveProbability
		}
	}
	if lg := root.Log; lg != nil {
		if lg.Level != nil {
			model.Log.Level = *lg.Level
		}
		if lg.Format != nil {
			model.Log.Format = *lg.Format
		}
	}

	for _, p := range root.Patterns {
		pattern, err := translatePattern(p)
		if err != nil {
			return err
		}
		model.Patterns[pattern.Name] = pattern
	}
	return nil
}

// translatePattern decodes a pattern block's cells attribute. The value must
// be a list of [row, col] number pairs; it arrives as an arbitrary tuple
// expression, so it is first converted to a uniform cty list before being
// pulled into Go ints.
func translatePattern(block *patternBlock) (config.Pattern, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return config.Pattern{}, fmt.Errorf("pattern %q: %w", block.Name, diags)
	}

	attr, ok := attrs["cells"]
	if !ok {
		return config.Pattern{}, fmt.Errorf("pattern %q is missing the cells attribute", block.Name)
	}

	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return config.Pattern{}, fmt.Errorf("pattern %q: %w", block.Name, diags)
	}

	val, err := convert.Convert(val, cty.List(cty.List(cty.Number)))
	if err != nil {
		return config.Pattern{}, fmt.Errorf("pattern %q: cells must be a list of [row, col] pairs: %w", block.Name, err)
	}

	var cells [][]int
	if err := gocty.FromCtyValue(val, &cells); err != nil {
		return config.Pattern{}, fmt.Errorf("pattern %q: %w", block.Name, err)
	}

	pattern := config.Pattern{Name: block.Name}
	for _, pair := range cells {
		if len(pair) != 2 {
			return config.Pattern{}, fmt.Errorf("pattern %q: cell %v is not a [row, col] pair", block.Name, pair)
		}
		pattern.Cells = append(pattern.Cells, [2]int{pair[0], pair[1]})
	}
	return pattern, nil
}
