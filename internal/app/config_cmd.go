package app

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/config"
)

// configField maps a CLI field name to its accessors on the daemon's
// config record. Secrets are masked on output.
type configField struct {
	name   string
	secret bool
	get    func(*backend.Config) string
	set    func(*backend.Config, string) error
}

func strField(name string, secret bool, get func(*backend.Config) *string) configField {
	return configField{
		name:   name,
		secret: secret,
		get:    func(c *backend.Config) string { return *get(c) },
		set: func(c *backend.Config, v string) error {
			*get(c) = v
			return nil
		},
	}
}

var configFields = []configField{
	strField("cloudinary_cloud_name", false, func(c *backend.Config) *string { return &c.CloudinaryCloudName }),
	strField("cloudinary_api_key", false, func(c *backend.Config) *string { return &c.CloudinaryAPIKey }),
	strField("cloudinary_api_secret", true, func(c *backend.Config) *string { return &c.CloudinaryAPISecret }),
	strField("r2_access_key_id", false, func(c *backend.Config) *string { return &c.R2AccessKeyID }),
	strField("r2_secret_access_key", true, func(c *backend.Config) *string { return &c.R2SecretAccessKey }),
	strField("r2_bucket_name", false, func(c *backend.Config) *string { return &c.R2BucketName }),
	strField("r2_endpoint", false, func(c *backend.Config) *string { return &c.R2Endpoint }),
	strField("r2_public_domain", false, func(c *backend.Config) *string { return &c.R2PublicDomain }),
	{
		name: "settings_max_width",
		get:  func(c *backend.Config) string { return strconv.Itoa(c.SettingsMaxWidth) },
		set: func(c *backend.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("settings_max_width must be a positive number")
			}
			c.SettingsMaxWidth = n
			return nil
		},
	},
	{
		name: "settings_auto_webp",
		get:  func(c *backend.Config) string { return strconv.FormatBool(c.SettingsAutoWebP) },
		set: func(c *backend.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("settings_auto_webp must be true or false")
			}
			c.SettingsAutoWebP = b
			return nil
		},
	},
}

func fieldByName(name string) *configField {
	for i := range configFields {
		if configFields[i].name == name {
			return &configFields[i]
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write daemon settings",
		Long:  "Passthrough to the daemon's configuration record; credentials live daemon-side.",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd(), newConfigDefaultProviderCmd())
	return cmd
}

func newConfigDefaultProviderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default-provider [provider]",
		Short: "Show or set the client-side default upload provider",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println(cfg.DefaultProvider())
				return nil
			}
			p := backend.Provider(args[0])
			if !p.Valid() {
				return fmt.Errorf("unknown provider %q (want cloudinary or r2)", args[0])
			}
			cfg.Defaults.Provider = string(p)
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			ok("Default provider set to %s", p.Label())
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [field]",
		Short: "Show daemon settings (secrets masked)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dcfg, err := client.GetConfig()
			if err != nil {
				return fmt.Errorf("loading daemon config: %w", err)
			}

			if len(args) == 1 {
				f := fieldByName(args[0])
				if f == nil {
					return fmt.Errorf("unknown field %q (see 'optibridge config get')", args[0])
				}
				fmt.Println(maskValue(f, dcfg))
				return nil
			}

			names := make([]string, len(configFields))
			for i, f := range configFields {
				names[i] = f.name
			}
			sort.Strings(names)
			for _, name := range names {
				f := fieldByName(name)
				fmt.Printf("%-24s %s\n", color.CyanString(name), maskValue(f, dcfg))
			}
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change one daemon setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			f := fieldByName(args[0])
			if f == nil {
				return fmt.Errorf("unknown field %q (see 'optibridge config get')", args[0])
			}

			dcfg, err := client.GetConfig()
			if err != nil {
				return fmt.Errorf("loading daemon config: %w", err)
			}
			if err := f.set(dcfg, args[1]); err != nil {
				return err
			}
			if err := client.SaveConfig(dcfg); err != nil {
				return fmt.Errorf("saving daemon config: %w", err)
			}
			ok("Set %s", f.name)
			return nil
		},
	}
}

func maskValue(f *configField, cfg *backend.Config) string {
	v := f.get(cfg)
	if v == "" {
		return color.HiBlackString("(unset)")
	}
	if f.secret {
		return "••••••••"
	}
	return v
}
