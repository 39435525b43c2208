package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/seregonwar/CoreBaseApplication/internal/config"
	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/spf13/cobra"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration and settings",
		Long: `Create and inspect .corebase.yaml, and read or write keys in the
settings store (settings.path, ~/.config/corebase/settings.yaml by default).

Examples:
  corebase config init
  corebase config show
  corebase config set server.port 9000
  corebase config get server.port`,
	}

	cmd.AddCommand(
		a.configInitCmd(),
		a.configShowCmd(),
		a.configGetCmd(),
		a.configSetCmd(),
		a.configKeysCmd(),
	)
	return cmd
}

func (a *app) configInitCmd() *cobra.Command {
	var force, global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create .corebase.yaml with default values",
		Long: `Write a config file holding every default value.

The file goes to --config when given, ~/.config/corebase/config.yaml with
--global, and ./.corebase.yaml otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.initPath(global)
			if err != nil {
				return err
			}
			if !force && a.canPrompt() {
				if _, err := os.Stat(path); err == nil {
					overwrite, err := a.confirm(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path))
					if err != nil {
						return errors.WrapWithCode(err, errors.ErrConfig,
							"Failed to get user input",
							"Try running with --force to overwrite")
					}
					if !overwrite {
						printMuted(a.stdout, "Cancelled.")
						return nil
					}
					force = true
				}
			}
			if err := config.Write(path, config.DefaultConfig(), force); err != nil {
				return err
			}

			if a.jsonOut {
				return WriteJSONSuccess(a.stdout, map[string]string{"path": path})
			}
			printSuccess(a.stdout, "Created %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&global, "global", false, "write the global config in ~/.config/corebase")
	return cmd
}

// canPrompt reports whether a question can be asked: text output on a
// terminal with a confirm function wired.
func (a *app) canPrompt() bool {
	return a.confirm != nil && !a.jsonOut && a.isTerminal(os.Stdin) && a.isTerminal(a.stdout)
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

func (a *app) initPath(global bool) (string, error) {
	switch {
	case global:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot determine home directory", "Set $HOME")
		}
		return filepath.Join(home, config.GlobalConfigDir, config.GlobalConfigFile), nil
	case a.configPath != "":
		return config.ExpandPath(a.configPath), nil
	default:
		return config.ConfigFileName, nil
	}
}

func (a *app) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults and COREBASE_* environment overrides.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := a.loadConfig()
			if err != nil {
				return err
			}

			if a.jsonOut {
				return WriteJSONSuccess(a.stdout, map[string]interface{}{
					"path":   path,
					"config": cfg,
				})
			}

			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			if path == "" {
				printMuted(a.stdout, "# no config file found, showing defaults")
			} else {
				printMuted(a.stdout, "# %s", path)
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
}

// settings loads the settings store named by the config, if it exists yet.
func (a *app) settings() (*config.Manager, string, error) {
	cfg, _, err := a.loadConfig()
	if err != nil {
		return nil, "", err
	}
	path := cfg.Settings.Path
	if path == "" {
		return nil, "", errors.New(errors.ErrConfig,
			"No settings path configured",
			"Set settings.path in .corebase.yaml")
	}

	mgr := config.NewManager()
	if _, err := os.Stat(path); err == nil {
		if err := mgr.Load(path); err != nil {
			return nil, "", err
		}
	}
	return mgr, path, nil
}

func (a *app) configGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a settings value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := a.settings()
			if err != nil {
				return err
			}
			v, err := mgr.Get(args[0])
			if err != nil {
				return err
			}

			if a.jsonOut {
				return WriteJSONSuccess(a.stdout, map[string]interface{}{
					"key":   args[0],
					"kind":  v.Kind().String(),
					"value": v,
				})
			}
			fmt.Fprintln(a.stdout, v.String())
			return nil
		},
	}
}

func (a *app) configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a settings value",
		Long: `Store a value in the settings file. JSON literals (numbers, true/false,
null, arrays, objects) keep their type; anything else is stored as text.

Examples:
  corebase config set server.port 9000
  corebase config set features '["a","b"]'
  corebase config set greeting hello`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, path, err := a.settings()
			if err != nil {
				return err
			}

			v := config.ParseValue(args[1])
			if err := mgr.Set(args[0], v); err != nil {
				return err
			}
			if err := mgr.Save(path); err != nil {
				return err
			}

			if a.jsonOut {
				return WriteJSONSuccess(a.stdout, map[string]interface{}{
					"key":   args[0],
					"kind":  v.Kind().String(),
					"value": v,
					"path":  path,
				})
			}
			printSuccess(a.stdout, "Set %s = %s", args[0], v.String())
			return nil
		},
	}
}

func (a *app) configKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the keys in the settings store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := a.settings()
			if err != nil {
				return err
			}
			keys := mgr.Keys()

			if a.jsonOut {
				if keys == nil {
					keys = []string{}
				}
				return WriteJSONSuccess(a.stdout, keys)
			}
			for _, k := range keys {
				fmt.Fprintln(a.stdout, k)
			}
			return nil
		},
	}
}
