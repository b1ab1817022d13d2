package dashboard

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	themeName    = "niks-aqua"
	variantDark  = "dark"
	variantLight = "light"
)

// ThemeProvider resolves theme details for a selector. Optional; the built-in
// dark and light palettes are used when absent.
type ThemeProvider interface {
	SelectTheme(ctx context.Context, selector ThemeSelector) (*ThemeSelection, error)
}

// ThemeSelector describes the desired theme/variant.
type ThemeSelector struct {
	Name    string
	Variant string
}

// SelectorForState picks the variant from the shell dark-mode flag.
func SelectorForState(state ShellState) ThemeSelector {
	variant := variantLight
	if state.DarkMode {
		variant = variantDark
	}
	return ThemeSelector{Name: themeName, Variant: variant}
}

// ThemeSelection is a resolved palette plus the matching echarts theme.
type ThemeSelection struct {
	Name       string
	Variant    string
	Tokens     map[string]string
	ChartTheme string
}

// DefaultTheme returns the built-in palette for a selector.
func DefaultTheme(selector ThemeSelector) *ThemeSelection {
	if selector.Variant == variantLight {
		return &ThemeSelection{
			Name:    themeName,
			Variant: variantLight,
			Tokens: map[string]string{
				"surface":      "#f4f4f5",
				"panel":        "#ffffff",
				"border":       "#e4e4e7",
				"text":         "#09090b",
				"accent":       "#0284c7",
				"accent-glow":  "rgba(2,132,199,0.2)",
				"muted":        "#71717a",
				"danger":       "#e11d48",
				"success":      "#059669",
				"warning":      "#d97706",
				"font-display": "Inter, sans-serif",
			},
			ChartTheme: types.ThemeWesteros,
		}
	}
	return &ThemeSelection{
		Name:    themeName,
		Variant: variantDark,
		Tokens: map[string]string{
			"surface":      "#000000",
			"panel":        "#09090b",
			"border":       "#18181b",
			"text":         "#ffffff",
			"accent":       "#00f2ff",
			"accent-glow":  "rgba(0,242,255,0.2)",
			"muted":        "#71717a",
			"danger":       "#f43f5e",
			"success":      "#34d399",
			"warning":      "#fbbf24",
			"font-display": "Inter, sans-serif",
		},
		ChartTheme: types.ThemeChalk,
	}
}

// ChartThemeForState returns the echarts theme matching the shell state.
func ChartThemeForState(meta WidgetContext) string {
	return DefaultTheme(SelectorForState(meta.State)).ChartTheme
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the palette as an inline style, sorted by name.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	keys := slices.Sorted(maps.Keys(vars))
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if vars[key] != "" {
			parts = append(parts, key+": "+vars[key]+";")
		}
	}
	return strings.Join(parts, " ")
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
