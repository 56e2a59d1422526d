package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without project config or env
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.False(t, cfg.Format.Compact)
	assert.False(t, cfg.Classes.All)
	assert.Equal(t, DefaultClasses, cfg.Classes.Allow)
	assert.Equal(t, DefaultAPIDumpURL, cfg.Sources.APIDump)
	assert.Equal(t, DefaultCorrectionsURL, cfg.Sources.Corrections)
	assert.Equal(t, 60, cfg.Sources.TimeoutSeconds)
	assert.Equal(t, "src/roblox_types.luau", cfg.Output.Types)
	assert.Equal(t, "return (create", cfg.Output.CreateAnchor)
	assert.Equal(t, "-- TYPES HERE", cfg.Output.InitAnchor)
	assert.Empty(t, cfg.Aliases)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	content := `
[format]
compact = true

[classes]
allow = ["Frame", "Part"]

[output]
types = "gen/types.luau"

[[aliases]]
name = "int64"
type = "integer"

[[aliases]]
name = "ProtectedString"
type = "string"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Format.Compact)
	assert.Equal(t, []string{"Frame", "Part"}, cfg.Classes.Allow)
	assert.Equal(t, "gen/types.luau", cfg.Output.Types)
	// Untouched keys keep their defaults
	assert.Equal(t, "src/init.luau", cfg.Output.Init)

	require.Len(t, cfg.Aliases, 2)
	assert.Equal(t, map[string]string{"int64": "integer", "ProtectedString": "string"}, cfg.AliasTable())
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_ProjectConfigAndEnv(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectConfigName), []byte(`
[classes]
all = true

[output]
init = "lib/init.luau"
`), 0644))

	chdir(t, nested)
	t.Setenv("RBXTYPES_OUTPUT_INIT", "env/init.luau")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Classes.All, "project config found by upward search")
	assert.Equal(t, "env/init.luau", cfg.Output.Init, "env vars win over config files")
}

func TestLoad_ExplicitFileWinsOverProject(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectConfigName), []byte("[format]\ncompact = false\n[output]\ntypes = \"project.luau\"\n"), 0644))
	explicit := filepath.Join(root, "explicit.toml")
	require.NoError(t, os.WriteFile(explicit, []byte("[output]\ntypes = \"explicit.luau\"\n"), 0644))

	chdir(t, root)

	cfg, err := Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "explicit.luau", cfg.Output.Types)

	files := ConfigFiles(explicit)
	require.Len(t, files, 2)
	assert.Equal(t, ProjectConfigName, filepath.Base(files[0]))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"all classes with empty allow list", func(c *Config) { c.Classes.All = true; c.Classes.Allow = nil }, false},
		{"empty allow list", func(c *Config) { c.Classes.Allow = nil }, true},
		{"blank class name", func(c *Config) { c.Classes.Allow = []string{"Frame", " "} }, true},
		{"empty api dump", func(c *Config) { c.Sources.APIDump = "" }, true},
		{"empty corrections", func(c *Config) { c.Sources.Corrections = "" }, true},
		{"zero timeout is valid", func(c *Config) { c.Sources.TimeoutSeconds = 0 }, false},
		{"negative timeout", func(c *Config) { c.Sources.TimeoutSeconds = -1 }, true},
		{"negative rate", func(c *Config) { c.Sources.MaxRequestsPerMinute = -5 }, true},
		{"empty init anchor", func(c *Config) { c.Output.InitAnchor = "" }, true},
		{"empty types path", func(c *Config) { c.Output.Types = "" }, true},
		{"alias without name", func(c *Config) { c.Aliases = []AliasConfig{{Type: "number"}} }, true},
		{"alias without type", func(c *Config) { c.Aliases = []AliasConfig{{Name: "int"}} }, true},
		{"bad theme", func(c *Config) { c.Log.Theme = "solarized" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteConfig_RoundTripAndBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", ProjectConfigName)

	cfg := Defaults()
	cfg.Format.Compact = true
	cfg.Aliases = []AliasConfig{{Name: "int64", Type: "number"}}
	require.NoError(t, WriteConfig(cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, loaded.Format.Compact)
	assert.Equal(t, cfg.Classes.Allow, loaded.Classes.Allow)
	assert.Equal(t, cfg.Aliases, loaded.Aliases)

	// Second write rotates the first file into .back1
	require.NoError(t, WriteConfig(Defaults(), path))
	_, err = os.Stat(path + ".back1")
	assert.NoError(t, err)
}
