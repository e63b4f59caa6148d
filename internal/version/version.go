package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the nyanc CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Banner renders Version with coloured major/minor/patch parts. A version
// that is not dotted is returned unchanged.
func Banner(colored bool) string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if !colored || len(parts) != 3 {
		return v
	}

	paint := func(c *color.Color, s string) string {
		c.EnableColor()
		return c.Sprint(s)
	}
	out := paint(majorColor, parts[0]) + "." + paint(minorColor, parts[1]) + "." + paint(patchColor, parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
