package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadBundle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "classes", "OrderService.cls"), "public class OrderService {}")
	writeFile(t, filepath.Join(dir, "classes", "Invoice.cls"), "public class Invoice {}")
	writeFile(t, filepath.Join(dir, "triggers", "OrderTrigger.trigger"), "trigger OrderTrigger on Order__c (before insert) {}")

	got, err := Read(dir)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Len(t, got["classes"], 2)
	assert.Equal(t, "public class Invoice {}", got["classes"]["Invoice.cls"])
	assert.Len(t, got["triggers"], 1)
}

func TestReadBundleIgnoresUnknownDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "classes", "A.cls"), "x")
	writeFile(t, filepath.Join(dir, "reports", "Q3.report"), "ignored")

	got, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got, "classes")
}

func TestReadBundleEmptyIsError(t *testing.T) {
	_, err := Read(t.TempDir())
	assert.Error(t, err)
}
