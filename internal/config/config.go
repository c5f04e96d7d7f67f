package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/recycle/internal/filepathext"
	"github.com/charmbracelet/recycle/internal/recycle"
	"github.com/invopop/jsonschema"
	"github.com/tidwall/sjson"
)

const (
	appName              = "recycle"
	defaultDataDirectory = ".recycle"

	defaultDemoItems    = 500
	defaultDemoTypes    = 3
	defaultFeedInterval = 750
)

// Layout selects and tunes the layout variant.
type Layout struct {
	Mode            string  `json:"mode,omitempty" jsonschema:"description=Layout variant,enum=vertical,enum=horizontal,enum=grid-vertical,enum=grid-horizontal,default=vertical"`
	OrthogonalCount int     `json:"orthogonal_count,omitempty" jsonschema:"description=Columns of a vertical grid or rows of a horizontal grid,minimum=1,default=1,example=3"`
	LeadingPadding  float64 `json:"leading_padding,omitempty" jsonschema:"description=Space before the first item along the sliding axis,minimum=0,default=0"`
	TrailingPadding float64 `json:"trailing_padding,omitempty" jsonschema:"description=Space after the last item along the sliding axis,minimum=0,default=0"`
	Spacing         float64 `json:"spacing,omitempty" jsonschema:"description=Gap between items or grid lines along the sliding axis,minimum=0,default=0"`
	CrossSpacing    float64 `json:"cross_spacing,omitempty" jsonschema:"description=Gutter between and around grid cells across the sliding axis,minimum=0,default=0"`
	CoverageFactor  float64 `json:"coverage_factor,omitempty" jsonschema:"description=Multiple of the viewport kept bound; 0 selects the variant default,minimum=0,example=1.5"`
	MinActive       int     `json:"min_active,omitempty" jsonschema:"description=Items bound at initialization even when coverage is already reached; 0 selects the variant default,minimum=0"`
	MinMovement     float64 `json:"min_movement,omitempty" jsonschema:"description=Scroll distance below which continuous updates are ignored,minimum=0,default=1"`
}

// Engine converts the layout into a normalized engine configuration.
func (l Layout) Engine() (recycle.Config, error) {
	mode := recycle.ModeVertical
	if l.Mode != "" {
		var err error
		if mode, err = recycle.ParseMode(l.Mode); err != nil {
			return recycle.Config{}, err
		}
	}
	return recycle.Config{
		Mode:            mode,
		OrthogonalCount: l.OrthogonalCount,
		LeadingPadding:  l.LeadingPadding,
		TrailingPadding: l.TrailingPadding,
		Spacing:         l.Spacing,
		CrossSpacing:    l.CrossSpacing,
		CoverageFactor:  l.CoverageFactor,
		MinActive:       l.MinActive,
		MinMovement:     l.MinMovement,
	}.Normalize(), nil
}

// Demo configures the collection shown by the interactive browser and the
// headless simulation.
type Demo struct {
	Items          int  `json:"items,omitempty" jsonschema:"description=Number of items in the demo collection,minimum=0,default=500"`
	Types          int  `json:"types,omitempty" jsonschema:"description=Number of visual types used by list layouts; grids always use one,minimum=1,default=3"`
	FeedIntervalMS int  `json:"feed_interval_ms,omitempty" jsonschema:"description=Milliseconds between live feed updates,minimum=1,default=750"`
	DisableFeed    bool `json:"disable_feed,omitempty" jsonschema:"description=Disable the live feed that mutates visible items,default=false"`
}

type Options struct {
	Debug         bool   `json:"debug,omitempty" jsonschema:"description=Enable debug logging,default=false"`
	DataDirectory string `json:"data_directory,omitempty" jsonschema:"description=Directory for logs and runtime data (relative to working directory),default=.recycle,example=.recycle"` // Relative to the cwd
}

// Config holds the configuration for recycle.
type Config struct {
	Schema string `json:"$schema,omitempty"`

	Layout *Layout `json:"layout,omitempty" jsonschema:"description=Layout variant and spacing"`

	Demo *Demo `json:"demo,omitempty" jsonschema:"description=Demo collection settings"`

	Options *Options `json:"options,omitempty" jsonschema:"description=General application options"`

	// Internal
	workingDir     string `json:"-"`
	dataConfigPath string `json:"-"`
}

// JSONSchemaExtend titles the generated schema.
func (Config) JSONSchemaExtend(schema *jsonschema.Schema) {
	schema.Title = "recycle configuration"
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// DataConfigPath is the file [Config.SetConfigField] writes to.
func (c *Config) DataConfigPath() string {
	return c.dataConfigPath
}

// LogFile returns the path of the rotating log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.Options.DataDirectory, "logs", appName+".log")
}

func (c *Config) FeedInterval() int {
	return c.Demo.FeedIntervalMS
}

func (c *Config) setDefaults(workingDir, dataDir string) {
	c.workingDir = workingDir
	if c.Layout == nil {
		c.Layout = &Layout{}
	}
	if c.Demo == nil {
		c.Demo = &Demo{}
	}
	if c.Options == nil {
		c.Options = &Options{}
	}

	if c.Demo.Items == 0 {
		c.Demo.Items = defaultDemoItems
	}
	if c.Demo.Types < 1 {
		c.Demo.Types = defaultDemoTypes
	}
	if c.Demo.FeedIntervalMS < 1 {
		c.Demo.FeedIntervalMS = defaultFeedInterval
	}

	if dataDir != "" {
		c.Options.DataDirectory = dataDir
	} else if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = filepath.Join(workingDir, defaultDataDirectory)
	}
	c.Options.DataDirectory = filepathext.Resolve(workingDir, c.Options.DataDirectory)
}

// Validate reports settings that cannot be normalized.
func (c *Config) Validate() error {
	if _, err := c.Layout.Engine(); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	if c.Demo.Items < 0 {
		return fmt.Errorf("invalid demo: items must not be negative, got %d", c.Demo.Items)
	}
	return nil
}

// SetConfigField sets key, in sjson path syntax, in the data config file.
func (c *Config) SetConfigField(key string, value any) error {
	data, err := os.ReadFile(c.dataConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigPath), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.dataConfigPath, []byte(newValue), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
