package am

import (
	"github.com/spf13/viper"
)

// Upstream document locations
const (
	DefaultAPIDumpURL     = "https://raw.githubusercontent.com/MaximumADHD/Roblox-Client-Tracker/roblox/API-Dump.json"
	DefaultCorrectionsURL = "https://raw.githubusercontent.com/NightrainsRbx/RobloxLsp/master/server/api/Corrections.json"
)

// DefaultClasses is the allow-list used when classes.all is false
var DefaultClasses = []string{
	"CanvasGroup",
	"Frame",
	"ImageButton",
	"TextButton",
	"ImageLabel",
	"TextLabel",
	"ScrollingFrame",
	"TextBox",
	"VideoFrame",
	"ViewportFrame",
	"BillboardGui",
	"ScreenGui",
	"AdGui",
	"SurfaceGui",
	"SelectionBox",
	"BoxHandleAdornment",
	"ConeHandleAdornment",
	"CylinderHandleAdornment",
	"ImageHandleAdornment",
	"LineHandleAdornment",
	"SphereHandleAdornment",
	"WireframeHandleAdornment",
	"ParabolaAdornment",
	"SelectionSphere",
	"ArcHandles",
	"Handles",
	"SurfaceSelection",
	"Path2D",
	"UIAspectRatioConstraint",
	"UISizeConstraint",
	"UITextSizeConstraint",
	"UICorner",
	"UIDragDetector",
	"UIFlexItem",
	"UIGradient",
	"UIListLayout",
	"UIGridLayout",
	"UIPageLayout",
	"UITableLayout",
	"UIPadding",
	"UIScale",
	"UIStroke",

	"WorldModel",
	"Camera",
	"Part",
	"Model",
	"MeshPart",
	"Highlight",
}

// SetDefaults configures default values for all configuration options.
// Aliases have no viper default: the built-in table lives with the resolver
// and configured entries are layered on top of it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format.compact", false)

	v.SetDefault("classes.all", false)
	v.SetDefault("classes.allow", DefaultClasses)

	v.SetDefault("sources.api_dump", DefaultAPIDumpURL)
	v.SetDefault("sources.corrections", DefaultCorrectionsURL)
	v.SetDefault("sources.local_corrections", "")
	v.SetDefault("sources.timeout_seconds", 60)
	v.SetDefault("sources.max_requests_per_minute", 0)

	v.SetDefault("output.types", "src/roblox_types.luau")
	v.SetDefault("output.create", "src/create.luau")
	v.SetDefault("output.init", "src/init.luau")
	v.SetDefault("output.create_anchor", "return (create")
	v.SetDefault("output.init_anchor", "-- TYPES HERE")
	v.SetDefault("output.types_module", "roblox_types")
	v.SetDefault("output.types_alias", "r")

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")
}

// Defaults returns a Config holding only default values
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always decode; a failure here is a programming error.
		panic(err)
	}
	return cfg
}
