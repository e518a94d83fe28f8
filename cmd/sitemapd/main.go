package main

import (
	"fmt"
	"log"
	"os"

	"github.com/repoharbor/sitemapd/cmd/sitemapd/commands"
	"github.com/repoharbor/sitemapd/cmd/sitemapd/completion"
	"github.com/repoharbor/sitemapd/cmd/sitemapd/ui"
	"github.com/repoharbor/sitemapd/internal/logging"
)

// filter out global flags that subcommands don't recognize
func filterGlobalFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--no-color" {
			continue
		}
		out = append(out, a)
	}
	return out
}

func main() {
	log.SetFlags(0)
	// Determine color usage from env and global flag
	enableColors := os.Getenv("NO_COLOR") == ""
	for _, a := range os.Args[1:] {
		if a == "--no-color" {
			enableColors = false
			break
		}
	}
	ui.SetColorsEnabled(enableColors)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	sub := os.Args[1]
	switch sub {
	case "serve":
		err = commands.Serve(filterGlobalFlags(os.Args[2:]))
	case "config":
		err = commands.Config(filterGlobalFlags(os.Args[2:]))
	case "completion":
		err = completion.Generate(filterGlobalFlags(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
	case "version", "--version":
		fmt.Println("sitemapd " + version)
	default:
		usage()
		os.Exit(2)
	}

	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.C.Red+"Error:"+ui.C.Reset, err)
		os.Exit(1)
	}
}

// version is set at build time via -ldflags
var version = "dev"

func usage() {
	fmt.Println("       _ _                                  _ ")
	fmt.Println("  ___ (_) |_ ___ _ __ ___   __ _ _ __   __| |")
	fmt.Println(" / __|| | __/ _ \\ '_ ` _ \\ / _` | '_ \\ / _` |")
	fmt.Println(" \\__ \\| | ||  __/ | | | | | (_| | |_) | (_| |")
	fmt.Println(" |___/|_|\\__\\___|_| |_| |_|\\__,_| .__/ \\__,_|")
	fmt.Println("                                |_|          ")
	fmt.Println(ui.C.Dim + "a sitemap delivery daemon with resumable, cache-aware downloads" + ui.C.Reset)
	fmt.Println()

	fmt.Println(ui.C.Bold + "Usage:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + " [flags]")
	fmt.Println("  " + ui.C.Green + "sitemapd config" + ui.C.Reset + " [init|show|edit|path]")
	fmt.Println("  " + ui.C.Green + "sitemapd completion" + ui.C.Reset + " [bash|zsh|fish|powershell]")
	fmt.Println()

	fmt.Println(ui.C.Bold + "Commands:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Cyan + "serve" + ui.C.Reset + "  Serve a directory of sitemap files over HTTP")
	fmt.Println("\t" + ui.C.Yellow + "-a, --addr" + ui.C.Reset + "        listen address (default 127.0.0.1:8983)")
	fmt.Println("\t" + ui.C.Yellow + "-d, --dir" + ui.C.Reset + "         directory containing sitemap files")
	fmt.Println("\t" + ui.C.Yellow + "--prefix" + ui.C.Reset + "          URL path prefix (default sitemaps)")
	fmt.Println("\t" + ui.C.Yellow + "--threshold" + ui.C.Reset + "       attachment size threshold in bytes")
	fmt.Println("\t" + ui.C.Yellow + "--rate-limit" + ui.C.Reset + "      limit bandwidth per client in Mbps")
	fmt.Println("\t" + ui.C.Yellow + "--journal" + ui.C.Reset + "         delivery journal database path")
	fmt.Println("\t" + ui.C.Yellow + "--no-gzip" + ui.C.Reset + "         disable gzip compression")
	fmt.Println()
	fmt.Println("  " + ui.C.Cyan + "config" + ui.C.Reset + "   Manage configuration file")
	fmt.Println("\t" + ui.C.Yellow + "init" + ui.C.Reset + "              initialize configuration interactively")
	fmt.Println("\t" + ui.C.Yellow + "show" + ui.C.Reset + "              display current configuration")
	fmt.Println("\t" + ui.C.Yellow + "edit" + ui.C.Reset + "              open config file in $EDITOR")
	fmt.Println("\t" + ui.C.Yellow + "path" + ui.C.Reset + "              show config file path")
	fmt.Println()
	fmt.Println("  " + ui.C.Cyan + "completion" + ui.C.Reset + "   Generate shell completion scripts")
	fmt.Println("\t" + ui.C.Yellow + "bash" + ui.C.Reset + "              generate bash completion")
	fmt.Println("\t" + ui.C.Yellow + "zsh" + ui.C.Reset + "               generate zsh completion")
	fmt.Println("\t" + ui.C.Yellow + "fish" + ui.C.Reset + "              generate fish completion")
	fmt.Println("\t" + ui.C.Yellow + "powershell" + ui.C.Reset + "        generate powershell completion")
	fmt.Println()

	fmt.Println(ui.C.Bold + "Examples:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + " " + ui.C.Dim + "				# Serve ./sitemaps on 127.0.0.1:8983" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + " -d /var/sitemaps " + ui.C.Dim + "		# Serve a specific directory" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + " -a 0.0.0.0:8080 " + ui.C.Dim + "		# Listen on all interfaces" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd config show" + ui.C.Reset + " " + ui.C.Dim + "			# View current settings" + ui.C.Reset)
	fmt.Println()
	fmt.Println(ui.C.Dim + "Use \"sitemapd <command> -h\" for command-specific help." + ui.C.Reset)
}
