package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify space configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"space.name": {
			get:      func(c *config.Config) any { return c.Space.Name },
			set:      func(c *config.Config, v string) error { c.Space.Name = v; return nil },
			writable: true,
		},
		"space.description": {
			get:      func(c *config.Config) any { return c.Space.Description },
			set:      func(c *config.Config, v string) error { c.Space.Description = v; return nil },
			writable: true,
		},
		"buckets": {
			get: func(c *config.Config) any { return c.Buckets },
		},
		"priorities": {
			get: func(c *config.Config) any { return c.Priorities },
		},
		"contexts": {
			get: func(c *config.Config) any { return c.Contexts },
		},
		"defaults.bucket": {
			get: func(c *config.Config) any { return c.Defaults.Bucket },
			set: func(c *config.Config, v string) error {
				if config.IndexOf(c.Buckets, v) < 0 {
					return clierr.Newf(clierr.InvalidInput,
						"invalid default bucket %q; allowed: %s", v, strings.Join(c.Buckets, ", "))
				}
				c.Defaults.Bucket = v
				return nil
			},
			writable: true,
		},
		"defaults.priority": {
			get: func(c *config.Config) any { return c.Defaults.Priority },
			set: func(c *config.Config, v string) error {
				if config.IndexOf(c.Priorities, v) < 0 {
					return clierr.Newf(clierr.InvalidInput,
						"invalid default priority %q; allowed: %s", v, strings.Join(c.Priorities, ", "))
				}
				c.Defaults.Priority = v
				return nil
			},
			writable: true,
		},
		"review.stale_after": {
			get: func(c *config.Config) any { return c.Review.StaleAfter },
			set: func(c *config.Config, v string) error {
				if _, err := time.ParseDuration(v); err != nil {
					return clierr.Newf(clierr.InvalidInput,
						"invalid review.stale_after %q: %v", v, err)
				}
				c.Review.StaleAfter = v
				return nil
			},
			writable: true,
		},
		"tasks_dir": {
			get: func(c *config.Config) any { return c.TasksDir },
		},
		"projects_dir": {
			get: func(c *config.Config) any { return c.ProjectsDir },
		},
		"next_id": {
			get: func(c *config.Config) any { return c.NextID },
		},
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"space.name",
		"space.description",
		"tasks_dir",
		"projects_dir",
		"buckets",
		"priorities",
		"contexts",
		"defaults.bucket",
		"defaults.priority",
		"review.stale_after",
		"next_id",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	// Table mode: key-value pairs.
	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-20s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
