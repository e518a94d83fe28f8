package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/repoharbor/sitemapd/cmd/sitemapd/ui"
	"github.com/repoharbor/sitemapd/internal/config"
	"github.com/repoharbor/sitemapd/internal/errors"
)

// Config executes the config command
func Config(args []string) error {
	if len(args) == 0 {
		configHelp()
		return nil
	}

	subcmd := args[0]
	switch subcmd {
	case "init":
		return configInit()

	case "show":
		cfg, err := config.LoadConfig()
		if err != nil {
			return errors.ConfigError("Failed to load configuration", err)
		}
		configPath := config.GetConfigPath()
		fmt.Println(ui.C.Bold + "Current Configuration:" + ui.C.Reset)
		fmt.Printf("  Config file: %s\n", configPath)
		fmt.Println()
		fmt.Printf("  %-22s %s\n", "Listen Address:", cfg.ListenAddr)
		fmt.Printf("  %-22s %s\n", "Path Prefix:", cfg.PathPrefix)
		fmt.Printf("  %-22s %s\n", "Sitemap Directory:", cfg.SitemapDir)
		fmt.Printf("  %-22s %d bytes\n", "Attachment Threshold:", cfg.DispositionThreshold)
		fmt.Printf("  %-22s %.1f Mbps\n", "Rate Limit:", cfg.RateLimitMbps)
		fmt.Printf("  %-22s %v\n", "Gzip:", cfg.Gzip)
		fmt.Printf("  %-22s %s\n", "Journal Path:", cfg.JournalPath)
		fmt.Printf("  %-22s %d seconds\n", "Cache Max-Age:", cfg.CacheMaxAge)

	case "edit":
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		configPath := config.GetConfigPath()

		// Create config file if it doesn't exist
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			cfg := config.DefaultConfig()
			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			fmt.Printf("Created new config file at: %s\n", configPath)
		}

		// Open editor
		cmd := fmt.Sprintf("%s %s", editor, configPath)
		fmt.Printf("Opening %s...\n", configPath)
		if err := syscall.Exec("/bin/sh", []string{"/bin/sh", "-c", cmd}, os.Environ()); err != nil {
			return fmt.Errorf("failed to open editor: %w", err)
		}

	case "path":
		fmt.Println(config.GetConfigPath())

	case "-h", "--help", "help":
		configHelp()

	default:
		fmt.Printf("Unknown config subcommand: %s\n", subcmd)
		configHelp()
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}

	return nil
}

func configInit() error {
	configPath := config.GetConfigPath()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf(ui.C.Yellow+"Configuration file already exists at: %s\n"+ui.C.Reset, configPath)
		overwrite := promptYesNo("Do you want to overwrite it?", false)
		if !overwrite {
			fmt.Println(ui.C.Dim + "Configuration initialization cancelled." + ui.C.Reset)
			return nil
		}
	}

	fmt.Println(ui.C.Bold + ui.C.Green + "Initialize Sitemapd Configuration" + ui.C.Reset)
	fmt.Println()
	fmt.Println(ui.C.Cyan + "Press Enter to use default values shown in " + ui.C.Dim + "[brackets]" + ui.C.Reset)
	fmt.Println()

	cfg := config.DefaultConfig()
	scanner := bufio.NewScanner(os.Stdin)

	// Listen Address
	cfg.ListenAddr = promptString(scanner, ui.C.Cyan+"Listen address"+ui.C.Reset, cfg.ListenAddr)

	// Path Prefix
	cfg.PathPrefix = promptString(scanner, ui.C.Cyan+"URL path prefix"+ui.C.Reset, cfg.PathPrefix)

	// Sitemap Directory
	cfg.SitemapDir = promptString(scanner, ui.C.Cyan+"Sitemap directory"+ui.C.Reset, cfg.SitemapDir)

	// Attachment Threshold
	cfg.DispositionThreshold = promptInt64(scanner, ui.C.Cyan+"Attachment threshold (bytes) "+ui.C.Dim+"(negative to disable)"+ui.C.Reset, cfg.DispositionThreshold)

	// Rate Limit
	cfg.RateLimitMbps = promptFloat(scanner, ui.C.Cyan+"Rate limit per client "+ui.C.Dim+"(Mbps, 0 for no limit)"+ui.C.Reset, cfg.RateLimitMbps)

	// Gzip
	cfg.Gzip = promptYesNo(ui.C.Cyan+"Enable gzip compression?"+ui.C.Reset, cfg.Gzip)

	// Journal Path
	cfg.JournalPath = promptString(scanner, ui.C.Cyan+"Journal database path "+ui.C.Dim+"(leave empty to disable)"+ui.C.Reset, cfg.JournalPath)

	// Cache Max-Age
	cfg.CacheMaxAge = promptInt(scanner, ui.C.Cyan+"Cache max-age (seconds)"+ui.C.Reset, cfg.CacheMaxAge)

	// Save configuration
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Println(ui.C.Green + "✓ Configuration saved to: " + ui.C.Reset + ui.C.Dim + configPath + ui.C.Reset)
	fmt.Println()
	fmt.Println(ui.C.Dim + "You can edit the configuration anytime with:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd config edit" + ui.C.Reset)

	return nil
}

func promptString(scanner *bufio.Scanner, prompt string, defaultValue string) string {
	if defaultValue != "" {
		fmt.Printf("%s "+ui.C.Dim+"[%s]"+ui.C.Reset+": ", prompt, defaultValue)
	} else {
		fmt.Printf("%s: ", prompt)
	}

	scanner.Scan()
	input := strings.TrimSpace(scanner.Text())

	if input == "" {
		return defaultValue
	}
	return input
}

func promptInt(scanner *bufio.Scanner, prompt string, defaultValue int) int {
	fmt.Printf("%s "+ui.C.Dim+"[%d]"+ui.C.Reset+": ", prompt, defaultValue)

	scanner.Scan()
	input := strings.TrimSpace(scanner.Text())

	if input == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		fmt.Printf(ui.C.Red+"Invalid number, using default: %d\n"+ui.C.Reset, defaultValue)
		return defaultValue
	}

	return value
}

func promptInt64(scanner *bufio.Scanner, prompt string, defaultValue int64) int64 {
	fmt.Printf("%s "+ui.C.Dim+"[%d]"+ui.C.Reset+": ", prompt, defaultValue)

	scanner.Scan()
	input := strings.TrimSpace(scanner.Text())

	if input == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		fmt.Printf(ui.C.Red+"Invalid number, using default: %d\n"+ui.C.Reset, defaultValue)
		return defaultValue
	}

	return value
}

func promptFloat(scanner *bufio.Scanner, prompt string, defaultValue float64) float64 {
	fmt.Printf("%s "+ui.C.Dim+"[%.1f]"+ui.C.Reset+": ", prompt, defaultValue)

	scanner.Scan()
	input := strings.TrimSpace(scanner.Text())

	if input == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		fmt.Printf(ui.C.Red+"Invalid number, using default: %.1f\n"+ui.C.Reset, defaultValue)
		return defaultValue
	}

	return value
}

func promptYesNo(prompt string, defaultValue bool) bool {
	defaultStr := ui.C.Dim + "y/N" + ui.C.Reset
	if defaultValue {
		defaultStr = ui.C.Dim + "Y/n" + ui.C.Reset
	}

	fmt.Printf("%s [%s]: ", prompt, defaultStr)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	input := strings.TrimSpace(strings.ToLower(scanner.Text()))

	if input == "" {
		return defaultValue
	}

	return input == "y" || input == "yes"
}

func configHelp() {
	fmt.Println(ui.C.Bold + ui.C.Green + "sitemapd config" + ui.C.Reset + " - Manage configuration file")
	fmt.Println()
	fmt.Println(ui.C.Bold + "Usage:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd config init" + ui.C.Reset + "  Initialize configuration interactively")
	fmt.Println("  " + ui.C.Green + "sitemapd config show" + ui.C.Reset + "  Display current configuration")
	fmt.Println("  " + ui.C.Green + "sitemapd config edit" + ui.C.Reset + "  Open config file in $EDITOR")
	fmt.Println("  " + ui.C.Green + "sitemapd config path" + ui.C.Reset + "  Show config file path")
	fmt.Println()
	fmt.Println(ui.C.Bold + "Configuration File:" + ui.C.Reset)
	fmt.Println("  Location: ~/.config/sitemapd/sitemapd.yaml")
	fmt.Println("  Format:   YAML")
	fmt.Println()
	fmt.Println(ui.C.Bold + "Available Settings:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Yellow + "listen_addr" + ui.C.Reset + "            Address and port to listen on")
	fmt.Println("  " + ui.C.Yellow + "path_prefix" + ui.C.Reset + "            URL path prefix for sitemap routes")
	fmt.Println("  " + ui.C.Yellow + "sitemap_dir" + ui.C.Reset + "            Directory containing sitemap files")
	fmt.Println("  " + ui.C.Yellow + "disposition_threshold" + ui.C.Reset + "  Size above which files download as attachments")
	fmt.Println("  " + ui.C.Yellow + "rate_limit_mbps" + ui.C.Reset + "        Bandwidth limit per client in Mbps")
	fmt.Println("  " + ui.C.Yellow + "gzip" + ui.C.Reset + "                   Compress text responses with gzip")
	fmt.Println("  " + ui.C.Yellow + "journal_path" + ui.C.Reset + "           Delivery journal database path")
	fmt.Println("  " + ui.C.Yellow + "cache_max_age" + ui.C.Reset + "          Cache-Control max-age in seconds")
	fmt.Println()
	fmt.Println(ui.C.Bold + "Examples:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd config init" + ui.C.Reset + "          " + ui.C.Dim + "# Create config interactively" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd config show" + ui.C.Reset + "          " + ui.C.Dim + "# View current settings" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd config edit" + ui.C.Reset + "          " + ui.C.Dim + "# Edit configuration" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd config path" + ui.C.Reset + "          " + ui.C.Dim + "# Show config location" + ui.C.Reset)
	fmt.Println()
	fmt.Println(ui.C.Dim + "Configuration values can also be set via environment variables:" + ui.C.Reset)
	fmt.Println(ui.C.Dim + "  SITEMAPD_RATE_LIMIT_MBPS=10 sitemapd serve" + ui.C.Reset)
}
