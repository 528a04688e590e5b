package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Yes is the affirmative sentinel used by boolean-like template options.
const Yes = "y"

// NoLicense is the license value meaning no LICENSE file is wanted.
const NoLicense = "None"

var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the resolved set of template variables. It is never mutated
// after loading; WithVars returns a modified copy.
type Config struct {
	ProjectName           string `yaml:"project_name"`
	ProjectSlug           string `yaml:"project_slug"`
	AuthorName            string `yaml:"author_name"`
	Year                  string `yaml:"year"`
	License               string `yaml:"license"`
	UseGit                string `yaml:"use_git"`
	UseGitHub             string `yaml:"use_github"`
	GitHubUsername        string `yaml:"github_username"`
	RStudioServerPassword string `yaml:"rstudio_server_password"`
}

// GitEnabled reports whether use_git is exactly the affirmative sentinel.
func (c Config) GitEnabled() bool {
	return c.UseGit == Yes
}

// GitHubEnabled reports whether use_github is exactly the affirmative sentinel.
func (c Config) GitHubEnabled() bool {
	return c.UseGitHub == Yes
}

func DefaultConfigPath() string {
	return ".postgen.yaml"
}

func DefaultConfig() *Config {
	cfg := &Config{
		ProjectName:           "My Project",
		Year:                  strconv.Itoa(time.Now().Year()),
		License:               "MIT",
		UseGit:                Yes,
		UseGitHub:             "n",
		RStudioServerPassword: "rstudio",
	}
	cfg.ProjectSlug = Slugify(cfg.ProjectName)
	return cfg
}

// LoadConfig reads the resolved variables from a YAML file. Keys missing from
// the file keep their defaults; a missing file yields DefaultConfig.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	slugSet := false
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, ok := raw["project_slug"]; ok {
		slugSet = true
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if !slugSet || cfg.ProjectSlug == "" {
		cfg.ProjectSlug = Slugify(cfg.ProjectName)
	}

	return cfg, nil
}

// WithVars returns a copy of c with key=value overrides applied. Keys use the
// YAML names. Setting project_name without project_slug re-derives the slug.
func (c Config) WithVars(vars map[string]string) (*Config, error) {
	out := c
	fields := out.fields()

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field, ok := fields[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
		}
		*field = vars[k]
	}

	if _, ok := vars["project_name"]; ok {
		if _, slugOK := vars["project_slug"]; !slugOK {
			out.ProjectSlug = Slugify(out.ProjectName)
		}
	}

	return &out, nil
}

// Keys lists the configuration keys accepted by WithVars.
func Keys() []string {
	var c Config
	keys := make([]string, 0, 9)
	for k := range c.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"project_name":            &c.ProjectName,
		"project_slug":            &c.ProjectSlug,
		"author_name":             &c.AuthorName,
		"year":                    &c.Year,
		"license":                 &c.License,
		"use_git":                 &c.UseGit,
		"use_github":              &c.UseGitHub,
		"github_username":         &c.GitHubUsername,
		"rstudio_server_password": &c.RStudioServerPassword,
	}
}

// ParseVars splits key=value pairs as given on the command line.
func ParseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, v := range pairs {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid variable %q: expected key=value", v)
		}
		vars[parts[0]] = parts[1]
	}
	return vars, nil
}

// Slugify derives a project slug the way the project template does.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
