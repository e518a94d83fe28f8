package commands

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/repoharbor/sitemapd/cmd/sitemapd/ui"
	"github.com/repoharbor/sitemapd/internal/config"
	"github.com/repoharbor/sitemapd/internal/errors"
	"github.com/repoharbor/sitemapd/internal/journal"
	"github.com/repoharbor/sitemapd/internal/locator"
	"github.com/repoharbor/sitemapd/internal/logging"
	"github.com/repoharbor/sitemapd/internal/server"
	"github.com/repoharbor/sitemapd/internal/watch"
)

// Serve executes the serve command
func Serve(args []string) error {
	// Load configuration (config file → env vars)
	cfg, err := config.LoadConfig()
	if err != nil {
		return errors.ConfigError("Failed to load configuration", err)
	}

	// Count -v flags and filter them out
	verbosity, filteredArgs := countVerbosity(args)

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.Usage = serveHelp
	// Use config defaults for flags (config → env → flags precedence)
	addr := fs.String("addr", cfg.ListenAddr, "listen address")
	fs.StringVar(addr, "a", cfg.ListenAddr, "")
	dir := fs.String("dir", cfg.SitemapDir, "sitemap directory")
	fs.StringVar(dir, "d", cfg.SitemapDir, "")
	prefix := fs.String("prefix", cfg.PathPrefix, "URL path prefix")
	threshold := fs.Int64("threshold", cfg.DispositionThreshold, "size above which files download as attachments (negative disables)")
	rateLimit := fs.Float64("rate-limit", cfg.RateLimitMbps, "bandwidth limit in Mbps per client")
	journalPath := fs.String("journal", cfg.JournalPath, "delivery journal database path")
	noGzip := fs.Bool("no-gzip", !cfg.Gzip, "disable gzip compression")
	if err := fs.Parse(filteredArgs); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	// Set log level based on verbosity
	if verbosity > 0 {
		logging.SetLevel(verbosity)
	}

	if err := checkSitemapDir(*dir); err != nil {
		return err
	}

	jrnl, err := journal.Open(*journalPath)
	if err != nil {
		return errors.JournalError(*journalPath, err)
	}
	defer func() { _ = jrnl.Close() }()

	watcher, err := watch.New(*dir)
	if err != nil {
		logging.Warnf("Directory watcher unavailable: %v", err)
	} else {
		watcher.Start()
		defer watcher.Stop()
	}

	srv := &server.Server{
		ListenAddr:           *addr,
		PathPrefix:           *prefix,
		DispositionThreshold: *threshold,
		RateLimitMbps:        *rateLimit,
		Gzip:                 !*noGzip,
		CacheMaxAge:          cfg.CacheMaxAge,
		Locator:              locator.New(*dir),
		Journal:              jrnl,
	}

	url, err := srv.Start()
	if err != nil {
		return errors.ListenError(*addr, err)
	}
	defer func() { _ = srv.Shutdown() }()

	fmt.Fprintf(os.Stderr, "Serving sitemaps from '%s'\n", *dir)
	if *threshold >= 0 {
		fmt.Fprintf(os.Stderr, "Attachment threshold: %d bytes\n", *threshold)
	}
	if *rateLimit > 0 {
		fmt.Fprintf(os.Stderr, "Rate limit: %.1f Mbps per client\n", *rateLimit)
	}
	if *journalPath != "" {
		fmt.Fprintf(os.Stderr, "Journal: %s\n", *journalPath)
	}

	fmt.Fprintf(os.Stderr, "\n"+ui.C.Green+"Sitemaps available at:"+ui.C.Reset+"\n%s\n", url)

	// Wait for interrupt signal for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	fmt.Println("\nShutting down gracefully...")

	return nil
}

// checkSitemapDir decides whether serve can start against dir. A directory
// that does not exist yet is fine: the generator may simply not have run,
// requests answer 404 and the watcher attaches once it appears. A path that
// exists but is not a directory, or cannot be statted, is fatal.
func checkSitemapDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Warnf("Sitemap directory %s does not exist yet; serving 404 until the generator creates it", dir)
			return nil
		}
		return errors.PermissionError("read directory", dir, err)
	}
	if !info.IsDir() {
		return errors.SitemapDirError(dir, nil)
	}
	return nil
}

func serveHelp() {
	fmt.Println(ui.C.Bold + ui.C.Green + "sitemapd serve" + ui.C.Reset + " - Serve a directory of sitemap files over HTTP")
	fmt.Println()
	fmt.Println(ui.C.Bold + "Usage:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + " [flags]")
	fmt.Println()
	fmt.Println(ui.C.Bold + "Description:" + ui.C.Reset)
	fmt.Println("  Start an HTTP server that delivers sitemap files with conditional")
	fmt.Println("  request, range and content-disposition handling. File names are")
	fmt.Println("  matched case-insensitively against the sitemap directory.")
	fmt.Println()
	fmt.Println(ui.C.Bold + "Flags:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Yellow + "-a, --addr" + ui.C.Reset + "        listen address (default: 127.0.0.1:8983)")
	fmt.Println("  " + ui.C.Yellow + "-d, --dir" + ui.C.Reset + "         directory containing sitemap files")
	fmt.Println("  " + ui.C.Yellow + "--prefix" + ui.C.Reset + "          URL path prefix (default: sitemaps)")
	fmt.Println("  " + ui.C.Yellow + "--threshold" + ui.C.Reset + "       attachment size threshold in bytes (negative disables)")
	fmt.Println("  " + ui.C.Yellow + "--rate-limit" + ui.C.Reset + "      limit bandwidth per client in Mbps (0 = unlimited)")
	fmt.Println("  " + ui.C.Yellow + "--journal" + ui.C.Reset + "         path to the delivery journal database")
	fmt.Println("  " + ui.C.Yellow + "--no-gzip" + ui.C.Reset + "         disable gzip compression")
	fmt.Println("  " + ui.C.Yellow + "-v, --verbose" + ui.C.Reset + "     verbose debug logging")
	fmt.Println()
	fmt.Println(ui.C.Bold + "Examples:" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + "                              " + ui.C.Dim + "# Serve ./sitemaps on 127.0.0.1:8983" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + " -d /var/sitemaps             " + ui.C.Dim + "# Serve a specific directory" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + " -a 0.0.0.0:8080              " + ui.C.Dim + "# Listen on all interfaces" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + " --threshold -1               " + ui.C.Dim + "# Never force attachment downloads" + ui.C.Reset)
	fmt.Println("  " + ui.C.Green + "sitemapd serve" + ui.C.Reset + " --journal ./journal.db       " + ui.C.Dim + "# Record deliveries to a journal" + ui.C.Reset)
}
