package config

// SiteConfig holds site-specific configuration for a single audited site.
// This allows keeping the patterns for several sites in one config file.
type SiteConfig struct {
	// Filter is the regular expression a link must match to count as
	// internal to this site.
	Filter string `yaml:"filter,omitempty"`

	// Prefix is the regular expression stripped from the front of a link
	// to reduce it to a page identifier.
	Prefix string `yaml:"prefix,omitempty"`

	// Root overrides the page identifier reachability starts from.
	Root string `yaml:"root,omitempty"`

	// Directory is the corpus directory for this site.
	Directory string `yaml:"directory,omitempty"`

	// BaseURL is the URL pages are downloaded under by the fetch command.
	BaseURL string `yaml:"baseUrl,omitempty"`
}

// File represents the structure of the .pagegraph configuration file.
type File struct {
	// Sites maps site names to their site-specific configurations.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains default site configuration applied to all sites
	// unless overridden in the site-specific configuration.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a specific site.
// It merges the site-specific configuration with defaults.
func (cf *File) GetSiteConfig(site string) SiteConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with site-specific configuration if present
	if siteConfig, ok := cf.Sites[site]; ok {
		if siteConfig.Filter != "" {
			result.Filter = siteConfig.Filter
		}
		if siteConfig.Prefix != "" {
			result.Prefix = siteConfig.Prefix
		}
		if siteConfig.Root != "" {
			result.Root = siteConfig.Root
		}
		if siteConfig.Directory != "" {
			result.Directory = siteConfig.Directory
		}
		if siteConfig.BaseURL != "" {
			result.BaseURL = siteConfig.BaseURL
		}
	}

	return result
}

// Apply copies the non-empty fields of a site configuration onto the
// runtime config. CLI flags are applied after this, so flags win.
func (c *Config) Apply(sc SiteConfig) {
	if sc.Filter != "" {
		c.FilterPattern = sc.Filter
	}
	if sc.Prefix != "" {
		c.PrefixPattern = sc.Prefix
	}
	if sc.Root != "" {
		c.RootID = sc.Root
	}
	if sc.Directory != "" {
		c.Directory = sc.Directory
	}
	if sc.BaseURL != "" {
		c.FetchBaseURL = sc.BaseURL
	}
}
