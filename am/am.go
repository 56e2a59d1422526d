package am

// Config represents the rbxtypes configuration
type Config struct {
	Format  FormatConfig  `mapstructure:"format" toml:"format" json:"format" yaml:"format"`
	Classes ClassesConfig `mapstructure:"classes" toml:"classes" json:"classes" yaml:"classes"`
	Sources SourcesConfig `mapstructure:"sources" toml:"sources" json:"sources" yaml:"sources"`
	Output  OutputConfig  `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Aliases []AliasConfig `mapstructure:"aliases" toml:"aliases" json:"aliases" yaml:"aliases"`
	Log     LogConfig     `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// FormatConfig toggles pretty vs compact output. Purely cosmetic.
type FormatConfig struct {
	Compact bool `mapstructure:"compact" toml:"compact" json:"compact" yaml:"compact"`
}

// ClassesConfig selects which classes get a generated record type
type ClassesConfig struct {
	All   bool     `mapstructure:"all" toml:"all" json:"all" yaml:"all"`         // every class in the dump, in dump order
	Allow []string `mapstructure:"allow" toml:"allow" json:"allow" yaml:"allow"` // used when All is false
}

// SourcesConfig locates the upstream documents. Each location is a URL or a local path.
type SourcesConfig struct {
	APIDump              string `mapstructure:"api_dump" toml:"api_dump" json:"api_dump" yaml:"api_dump"`
	Corrections          string `mapstructure:"corrections" toml:"corrections" json:"corrections" yaml:"corrections"`
	LocalCorrections     string `mapstructure:"local_corrections" toml:"local_corrections" json:"local_corrections" yaml:"local_corrections"` // optional TOML overlay, wins over Corrections
	TimeoutSeconds       int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRequestsPerMinute int    `mapstructure:"max_requests_per_minute" toml:"max_requests_per_minute" json:"max_requests_per_minute" yaml:"max_requests_per_minute"` // 0 = unlimited
}

// OutputConfig names the generated file and the two patched documents
type OutputConfig struct {
	Types        string `mapstructure:"types" toml:"types" json:"types" yaml:"types"`
	Create       string `mapstructure:"create" toml:"create" json:"create" yaml:"create"`
	Init         string `mapstructure:"init" toml:"init" json:"init" yaml:"init"`
	CreateAnchor string `mapstructure:"create_anchor" toml:"create_anchor" json:"create_anchor" yaml:"create_anchor"`
	InitAnchor   string `mapstructure:"init_anchor" toml:"init_anchor" json:"init_anchor" yaml:"init_anchor"`
	TypesModule  string `mapstructure:"types_module" toml:"types_module" json:"types_module" yaml:"types_module"` // module name re-exported from init
	TypesAlias   string `mapstructure:"types_alias" toml:"types_alias" json:"types_alias" yaml:"types_alias"`     // local name of the types module inside create
}

// AliasConfig maps a primitive or data-type name to a Luau type expression.
// Entries add to or override the built-in alias table.
type AliasConfig struct {
	Name string `mapstructure:"name" toml:"name" json:"name" yaml:"name"`
	Type string `mapstructure:"type" toml:"type" json:"type" yaml:"type"`
}

// LogConfig configures logging output
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"` // Color theme: gruvbox, everforest
}

// AliasTable returns the configured aliases as a lookup map.
// Later entries win over earlier ones with the same name.
func (c *Config) AliasTable() map[string]string {
	table := make(map[string]string, len(c.Aliases))
	for _, a := range c.Aliases {
		table[a.Name] = a.Type
	}
	return table
}

// Default file permissions
const (
	DefaultFilePermissions = 0644
	DefaultDirPermissions  = 0755
)

// ProjectConfigName is the file searched for upward from the working directory
const ProjectConfigName = "rbxtypes.toml"
