package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir moves into dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here
	for _, k := range []string{"CORPUS_SIZE", "EMBEDDER", "EMBED_CACHE_TTL_SECONDS", "SAMPLE_SEED", "BOOKINGS_SOURCE", "METRICS_ADDR"} {
		t.Setenv(k, "")
	}

	c := Load()
	if c.CorpusSize != 1000 || c.SampleSeed != 42 {
		t.Fatalf("sampling defaults: %+v", c)
	}
	if c.Embedder != EmbedderTEI || c.BookingsSource != SourceCSV || c.MetricsAddr != "" {
		t.Fatalf("source defaults: %+v", c)
	}
	if c.EmbedCacheTTL != time.Hour {
		t.Fatalf("ttl: %v", c.EmbedCacheTTL)
	}
}

func TestLoad_EnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CORPUS_SIZE=250\nEMBED_MODEL=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Cleanup(func() { os.Unsetenv("CORPUS_SIZE") }) // set by godotenv, not t.Setenv
	t.Setenv("EMBED_MODEL", "from-env")
	t.Setenv("EMBED_CACHE_TTL_SECONDS", "0")
	t.Setenv("INGEST_CHUNK", "lots")

	c := Load()
	if c.EmbedModel != "from-env" {
		t.Fatalf("real env should win: %q", c.EmbedModel)
	}
	if c.EmbedCacheTTL != 0 {
		t.Fatalf("ttl: %v", c.EmbedCacheTTL)
	}
	if c.IngestChunk != 500 {
		t.Fatalf("bad integer should fall back: %d", c.IngestChunk)
	}
	if c.CorpusSize != 250 {
		t.Fatalf(".env value not loaded: %d", c.CorpusSize)
	}
}
