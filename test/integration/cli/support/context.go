package support

import (
	"fmt"
	"os"
)

// TestContext holds the state for CLI integration tests.
type TestContext struct {
	// Command execution state
	LastCommand string
	LastOutput  string
	LastError   error

	// Test environment
	TempDir string

	// Test artifacts
	CreatedFiles []string
}

// NewTestContext creates a new test context with a fresh temp directory.
func NewTestContext() (*TestContext, error) {
	tempDir, err := os.MkdirTemp("", "folio-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &TestContext{
		TempDir:      tempDir,
		CreatedFiles: []string{},
	}, nil
}

// Cleanup removes all artifacts created during the scenario.
func (testCtx *TestContext) Cleanup() error {
	if testCtx.TempDir != "" {
		if err := os.RemoveAll(testCtx.TempDir); err != nil {
			return fmt.Errorf("failed to remove temp directory: %w", err)
		}
	}
	return nil
}
