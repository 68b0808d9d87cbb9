package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/echoctl/echoctl/internal/config"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug utilities",
	Long:  `Debug utilities for troubleshooting echoctl configuration and state.`,
}

var debugConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runDebugConfig,
}

var debugPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show system paths",
	RunE:  runDebugPaths,
}

var debugDispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Show command dispatch state",
	Long:  `Shows registered commands, which are loaded, and construction timings.`,
	RunE:  runDebugDispatch,
}

var debugCacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show device cache state",
	RunE:  runDebugCache,
}

func init() {
	debugCmd.AddCommand(debugConfigCmd)
	debugCmd.AddCommand(debugPathsCmd)
	debugCmd.AddCommand(debugDispatchCmd)
	debugCmd.AddCommand(debugCacheCmd)
}

func runDebugConfig(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	appConfig, err := config.Load(workDir)
	if err != nil {
		return err
	}

	// Never print credentials.
	redacted := *appConfig
	if redacted.Cookie != "" {
		redacted.Cookie = "<set>"
	}
	if redacted.CSRF != "" {
		redacted.CSRF = "<set>"
	}

	data, err := json.MarshalIndent(redacted, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runDebugPaths(cmd *cobra.Command, args []string) error {
	paths := config.GetPaths()

	fmt.Println("echoctl system paths:")
	fmt.Printf("  Data:   %s\n", paths.Data)
	fmt.Printf("  Config: %s\n", paths.Config)
	fmt.Printf("  Cache:  %s\n", paths.Cache)
	fmt.Printf("  State:  %s\n", paths.State)
	fmt.Printf("  Global config: %s\n", config.GlobalConfigPath())
	return nil
}

func runDebugDispatch(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	stats := a.loader.Stats()
	loaded := map[string]bool{}
	for _, name := range a.loader.LoadedNames() {
		loaded[name] = true
	}

	fmt.Println("registered commands:")
	for _, name := range a.loader.AvailableNames() {
		state := "registered"
		if loaded[name] {
			state = fmt.Sprintf("loaded in %dms", stats[name])
		}
		fmt.Printf("  %-10s %s\n", name, state)
	}
	return nil
}

func runDebugCache(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	age, err := a.deps.Cache.Age("devices")
	if err != nil {
		fmt.Println("device cache: empty")
		return nil
	}
	fmt.Printf("device cache: written %s ago (path %s)\n",
		age.Round(time.Second), config.GetPaths().DeviceCachePath())
	return nil
}
