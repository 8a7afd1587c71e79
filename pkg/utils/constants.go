package utils

// Theme modes.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	DefaultThemeMode = ThemeSystem
)

// ThemeModes lists the supported theme modes.
var ThemeModes = []string{ThemeLight, ThemeDark, ThemeSystem}

// MetaThemeColors maps a theme mode to its browser chrome color.
var MetaThemeColors = map[string]string{
	ThemeLight: "#ffffff",
	ThemeDark:  "#09090b",
}

const (
	PaginationLimit    = 100
	TwoWeeksInSeconds  = 60 * 60 * 24 * 14
	InfinityNumber     = 1_000_000_000
	RedirectQueryParam = "redirectTo"
	LocalhostIP        = "127.0.0.1"
)

// ReservedSlugs cannot be claimed as workspace or project slugs.
var ReservedSlugs = []string{
	"admin",
	"api",
	"app",
	"auth",
	"blog",
	"dashboard",
	"docs",
	"help",
	"login",
	"logout",
	"onboarding",
	"pricing",
	"register",
	"settings",
	"signin",
	"signup",
	"static",
	"status",
	"support",
	"welcome",
}

// SpecialApexDomains are public suffixes under which each subdomain is a
// separate site.
var SpecialApexDomains = []string{
	"github.io",
	"netlify.app",
	"pages.dev",
	"vercel.app",
	"workers.dev",
}

// CcTLDs are country-code top-level domains that commonly carry a second
// level (co.id, com.au).
var CcTLDs = []string{
	"au", "br", "cn", "id", "in", "jp", "kr", "mx", "my", "nz", "ph", "sg", "th", "tw", "uk", "vn", "za",
}

// Continents maps continent codes to display names.
var Continents = map[string]string{
	"AF": "Africa",
	"AN": "Antarctica",
	"AS": "Asia",
	"EU": "Europe",
	"NA": "North America",
	"OC": "Oceania",
	"SA": "South America",
}

// ContinentCodes lists the keys of Continents in a stable order.
var ContinentCodes = []string{"AF", "AN", "AS", "EU", "NA", "OC", "SA"}
