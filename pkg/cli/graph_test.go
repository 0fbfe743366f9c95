package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/docflow/pkg/cli"
)

func TestRun_GraphCommand_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "routing.yml")
	content := `
graphs:
  INCOMING:
    nodes:
      - id: clerk
        name: Clerk
        entry: true
      - id: dept_head
        name: Department Head
        approval: true
        sign: true
        terminal: true
    edges:
      clerk: [dept_head]
`
	err := os.WriteFile(configPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(), []string{"docflow", "graph", "--routing-config", configPath}, "test")
	gt.NoError(t, err)
}

func TestRun_GraphCommand_InvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "routing.yml")

	// Invalid: edge points to an undefined node
	content := `
graphs:
  INCOMING:
    nodes:
      - id: clerk
        name: Clerk
        entry: true
    edges:
      clerk: [ghost]
`
	err := os.WriteFile(configPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(), []string{"docflow", "graph", "--routing-config", configPath}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_GraphCommand_MissingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent.yml")

	err := cli.Run(context.Background(), []string{"docflow", "graph", "--routing-config", configPath}, "test")
	gt.Value(t, err).NotNil()
}
