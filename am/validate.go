package am

import (
	"strings"

	"github.com/teranos/rbxtypes/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if !c.Classes.All && len(c.Classes.Allow) == 0 {
		return errors.WithHint(
			errors.New("classes.allow is empty and classes.all is false"),
			"list class names under [classes] allow, or set all = true")
	}
	for i, name := range c.Classes.Allow {
		if strings.TrimSpace(name) == "" {
			return errors.Newf("classes.allow[%d] is blank", i)
		}
	}

	if c.Sources.APIDump == "" {
		return errors.New("sources.api_dump cannot be empty")
	}
	if c.Sources.Corrections == "" {
		return errors.New("sources.corrections cannot be empty")
	}
	// Timeout: 0 = client default, negative = invalid
	if c.Sources.TimeoutSeconds < 0 {
		return errors.Newf("sources.timeout_seconds must be >= 0, got %d", c.Sources.TimeoutSeconds)
	}
	// Rate: 0 = unlimited, negative = invalid
	if c.Sources.MaxRequestsPerMinute < 0 {
		return errors.Newf("sources.max_requests_per_minute must be >= 0, got %d", c.Sources.MaxRequestsPerMinute)
	}

	required := map[string]string{
		"output.types":         c.Output.Types,
		"output.create":        c.Output.Create,
		"output.init":          c.Output.Init,
		"output.create_anchor": c.Output.CreateAnchor,
		"output.init_anchor":   c.Output.InitAnchor,
		"output.types_module":  c.Output.TypesModule,
		"output.types_alias":   c.Output.TypesAlias,
	}
	for _, key := range []string{
		"output.types", "output.create", "output.init",
		"output.create_anchor", "output.init_anchor",
		"output.types_module", "output.types_alias",
	} {
		if required[key] == "" {
			return errors.Newf("%s cannot be empty", key)
		}
	}

	for i, alias := range c.Aliases {
		if strings.TrimSpace(alias.Name) == "" {
			return errors.Newf("aliases[%d].name cannot be empty", i)
		}
		if strings.TrimSpace(alias.Type) == "" {
			return errors.Newf("aliases[%d].type cannot be empty (alias %q)", i, alias.Name)
		}
	}

	if c.Log.Theme != "" && c.Log.Theme != "everforest" && c.Log.Theme != "gruvbox" {
		return errors.Newf("log.theme must be everforest or gruvbox, got %q", c.Log.Theme)
	}

	return nil
}
