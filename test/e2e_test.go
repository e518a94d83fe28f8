package test

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/repoharbor/sitemapd/internal/journal"
	"github.com/repoharbor/sitemapd/internal/locator"
	"github.com/repoharbor/sitemapd/internal/server"
)

// ANSI color codes for beautiful test output
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"

	symbolPass = "✓"
	symbolFail = "✗"
	symbolInfo = "ℹ"
	symbolTest = "→"
)

// Test helper functions
func logTest(t *testing.T, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	t.Logf("%s%s%s %s", colorCyan, symbolTest, colorReset, msg)
}

func logPass(t *testing.T, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	t.Logf("%s%s PASS%s %s", colorGreen, symbolPass, colorReset, msg)
}

func logInfo(t *testing.T, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	t.Logf("%s%s INFO%s %s", colorBlue, symbolInfo, colorReset, msg)
}

func logSection(t *testing.T, title string) {
	t.Logf("")
	t.Logf("%s%s━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━%s", colorBold, colorMagenta, colorReset)
	t.Logf("%s%s    %s    %s", colorBold, colorMagenta, title, colorReset)
	t.Logf("%s%s━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━%s", colorBold, colorMagenta, colorReset)
	t.Logf("")
}

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s%s FAIL%s %s: expected %v, got %v", colorRed, symbolFail, colorReset, msg, expected, actual)
	}
}

func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s%s FAIL%s %s: %v", colorRed, symbolFail, colorReset, msg, err)
	}
}

// writeSitemapDir populates a temporary sitemap directory with index and
// numbered sitemap files, the shape a sitemap generator leaves behind.
func writeSitemapDir(t *testing.T, files int, fileSize int) string {
	t.Helper()
	dir := t.TempDir()

	var index strings.Builder
	index.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<sitemapindex>\n")
	for i := 0; i < files; i++ {
		index.WriteString(fmt.Sprintf("  <sitemap><loc>sitemap%d.xml</loc></sitemap>\n", i))
		body := strings.Repeat(fmt.Sprintf("<url>/items/%d</url>\n", i), fileSize/20)
		path := filepath.Join(dir, fmt.Sprintf("sitemap%d.xml", i))
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	index.WriteString("</sitemapindex>\n")
	if err := os.WriteFile(filepath.Join(dir, "sitemap_index.xml"), []byte(index.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func startServer(t *testing.T, dir string, configure func(*server.Server)) (*server.Server, string) {
	t.Helper()
	srv := &server.Server{
		ListenAddr:           "127.0.0.1:0",
		PathPrefix:           "sitemaps",
		DispositionThreshold: -1,
		CacheMaxAge:          3600,
		Locator:              locator.New(dir),
	}
	if configure != nil {
		configure(srv)
	}
	url, err := srv.Start()
	assertNoError(t, err, "server start")
	t.Cleanup(func() { _ = srv.Shutdown() })
	return srv, url
}

// TestE2EDeliveryFlow walks the full crawler lifecycle: discover the index,
// fetch every referenced sitemap, revalidate, and resume an interrupted
// download with a Range request.
func TestE2EDeliveryFlow(t *testing.T) {
	logSection(t, "End-to-end sitemap delivery")

	dir := writeSitemapDir(t, 3, 4000)
	jpath := filepath.Join(t.TempDir(), "journal.db")
	jrnl, err := journal.Open(jpath)
	assertNoError(t, err, "journal open")
	defer func() { _ = jrnl.Close() }()

	_, base := startServer(t, dir, func(s *server.Server) {
		s.Journal = jrnl
	})
	logInfo(t, "server listening at %s", base)

	logTest(t, "fetching sitemap index")
	resp, err := http.Get(base + "sitemap_index.xml")
	assertNoError(t, err, "GET index")
	indexBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assertNoError(t, err, "read index")
	assertEqual(t, http.StatusOK, resp.StatusCode, "index status")
	lastModified := resp.Header.Get("Last-Modified")
	if lastModified == "" {
		t.Fatalf("index response missing Last-Modified")
	}
	logPass(t, "index delivered (%d bytes)", len(indexBody))

	logTest(t, "fetching every referenced sitemap, case-insensitively")
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("SITEMAP%d.XML", i)
		resp, err := http.Get(base + name)
		assertNoError(t, err, "GET "+name)
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		assertEqual(t, http.StatusOK, resp.StatusCode, name+" status")
		if !strings.Contains(string(body), fmt.Sprintf("/items/%d", i)) {
			t.Errorf("sitemap %d body does not contain its URLs", i)
		}
	}
	logPass(t, "all sitemaps delivered under case-variant names")

	logTest(t, "revalidating with If-Modified-Since")
	req, _ := http.NewRequest(http.MethodGet, base+"sitemap_index.xml", nil)
	req.Header.Set("If-Modified-Since", lastModified)
	resp, err = http.DefaultClient.Do(req)
	assertNoError(t, err, "conditional GET")
	_ = resp.Body.Close()
	assertEqual(t, http.StatusNotModified, resp.StatusCode, "revalidation status")
	logPass(t, "unchanged index answered with 304")

	logTest(t, "resuming an interrupted download")
	resp, err = http.Get(base + "sitemap0.xml")
	assertNoError(t, err, "GET full")
	full, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	cut := len(full) / 2
	req, _ = http.NewRequest(http.MethodGet, base+"sitemap0.xml", nil)
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-", cut))
	resp, err = http.DefaultClient.Do(req)
	assertNoError(t, err, "ranged GET")
	tail, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assertEqual(t, http.StatusPartialContent, resp.StatusCode, "range status")
	if string(full[cut:]) != string(tail) {
		t.Errorf("resumed tail does not match original content")
	}
	logPass(t, "range request resumed at byte %d and matched", cut)

	logTest(t, "checking the delivery journal")
	// Journal writes are synchronous but give the server a beat to finish
	time.Sleep(50 * time.Millisecond)
	records, err := jrnl.Records()
	assertNoError(t, err, "journal read")
	if len(records) < 6 {
		t.Errorf("expected at least 6 journal records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Outcome != "ok" {
			t.Errorf("unexpected journal outcome %q for %s", rec.Outcome, rec.Request)
		}
	}
	logPass(t, "journal holds %d completed deliveries", len(records))
}

// TestE2ECompressedDelivery verifies that a crawler advertising gzip gets a
// compressed index that decodes back to the original bytes.
func TestE2ECompressedDelivery(t *testing.T) {
	logSection(t, "Compressed delivery")

	dir := writeSitemapDir(t, 1, 8000)
	_, base := startServer(t, dir, func(s *server.Server) {
		s.Gzip = true
	})

	resp, err := http.Get(base + "sitemap0.xml")
	assertNoError(t, err, "GET identity")
	want, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	logTest(t, "fetching with Accept-Encoding: gzip")
	req, _ := http.NewRequest(http.MethodGet, base+"sitemap0.xml", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err = http.DefaultClient.Do(req)
	assertNoError(t, err, "GET gzip")
	defer func() { _ = resp.Body.Close() }()
	assertEqual(t, "gzip", resp.Header.Get("Content-Encoding"), "content encoding")

	zr, err := gzip.NewReader(resp.Body)
	assertNoError(t, err, "gzip reader")
	got, err := io.ReadAll(zr)
	assertNoError(t, err, "decompress")
	if string(want) != string(got) {
		t.Errorf("decompressed body differs from identity body")
	}
	logPass(t, "gzip body decoded to %d original bytes", len(got))
}

// TestE2EMissingSitemaps verifies the not-found surface stays a plain 404
// whether the file, or the whole directory, is missing.
func TestE2EMissingSitemaps(t *testing.T) {
	logSection(t, "Missing files and directories")

	dir := writeSitemapDir(t, 1, 1000)
	_, base := startServer(t, dir, nil)

	for _, name := range []string{"sitemap9.xml", "..%2Fsecret", "sitemap0.xml%00"} {
		resp, err := http.Get(base + name)
		assertNoError(t, err, "GET "+name)
		_ = resp.Body.Close()
		assertEqual(t, http.StatusNotFound, resp.StatusCode, name+" status")
	}
	logPass(t, "unknown and unsafe names answered with 404")

	gone := filepath.Join(t.TempDir(), "never-generated")
	_, base = startServer(t, gone, nil)
	resp, err := http.Get(base + "sitemap_index.xml")
	assertNoError(t, err, "GET against missing dir")
	_ = resp.Body.Close()
	assertEqual(t, http.StatusNotFound, resp.StatusCode, "missing dir status")
	logPass(t, "missing sitemap directory answered with 404")
}
