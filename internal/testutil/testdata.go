package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

var (
	// preserveTestOutput is a flag to preserve test output files for debugging
	preserveTestOutput = flag.Bool("preserve-test-output", false, "preserve test output files for debugging")
)

// TestDataPath returns the absolute path to a test data file.
// It searches in the testdata directory relative to the package.
func TestDataPath(t *testing.T, filename string) string {
	t.Helper()

	// Try different relative paths to find testdata
	paths := []string{
		filepath.Join("../../testdata", filename),
		filepath.Join("../testdata", filename),
		filepath.Join("testdata", filename),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			abs, _ := filepath.Abs(p)
			return abs
		}
	}

	t.Fatalf("Test data file not found: %s", filename)
	return ""
}

// TempRTF returns the path for a temporary RTF file for testing.
// The file is automatically cleaned up when the test completes.
func TempRTF(t *testing.T, name string) string {
	t.Helper()

	dir := t.TempDir()
	return filepath.Join(dir, name)
}

// TempRTFWithDebug returns a path for a temporary RTF file with optional
// debug preservation. If the -preserve-test-output flag is set, the file
// will live in a debug directory and be preserved after the test
// completes. Otherwise, it behaves like TempRTF.
func TempRTFWithDebug(t *testing.T, name string) string {
	t.Helper()

	if *preserveTestOutput {
		debugDir := "debug_test_output"
		if err := os.MkdirAll(debugDir, 0750); err != nil {
			t.Fatalf("Failed to create debug directory: %v", err)
		}

		debugName := t.Name() + "_" + name
		debugPath := filepath.Join(debugDir, debugName)

		t.Cleanup(func() {
			if !t.Failed() && !*preserveTestOutput {
				os.Remove(debugPath)
			}
		})

		return debugPath
	}

	return TempRTF(t, name)
}

// ReadTestData reads the content of a test data file.
// It searches for the file in the testdata directory.
func ReadTestData(t *testing.T, filename string) []byte {
	t.Helper()

	path := TestDataPath(t, filename)
	// #nosec G304 - Test utility function with controlled paths
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read test data %s: %v", filename, err)
	}

	return data
}

// WriteTestRTF writes body to a temporary RTF file and returns its path,
// for tests of callers that take a file path (ParseFile) rather than a
// string.
func WriteTestRTF(t *testing.T, name, body string) string {
	t.Helper()

	path := TempRTF(t, name)
	// #nosec G304 - Test utility function with controlled temp directory path
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("failed to write test RTF file: %v", err)
	}
	return path
}
