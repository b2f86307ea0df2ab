package config

import (
	"os"
	"path/filepath"
	"testing"

	"esolve-collections/internal/core/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "directory.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write directory file: %v", err)
	}
	return path
}

func TestLoadAccounts_Default(t *testing.T) {
	accounts, err := LoadAccounts("")
	if err != nil {
		t.Fatalf("LoadAccounts failed: %v", err)
	}
	if len(accounts) != 2 || accounts[0].Email != "admin@esolve.com" || accounts[0].Role != domain.RoleAdmin {
		t.Errorf("Unexpected default accounts: %+v", accounts)
	}
}

func TestLoadAccounts_File(t *testing.T) {
	path := writeFile(t, `
accounts:
  - id: "10"
    name: Team Lead
    email: " lead@esolve.com "
    role: admin
  - id: "11"
    name: Field Agent
    email: field@esolve.com
    role: agent
`)

	accounts, err := LoadAccounts(path)
	if err != nil {
		t.Fatalf("LoadAccounts failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Email != "lead@esolve.com" {
		t.Errorf("Expected trimmed email, got %q", accounts[0].Email)
	}
	if accounts[1].Role != domain.RoleAgent {
		t.Errorf("Expected agent role, got %q", accounts[1].Role)
	}
}

func TestLoadAccounts_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":     "accounts: []\n",
		"bad role":  "accounts:\n  - {id: \"1\", name: A, email: a@x.com, role: owner}\n",
		"dup email": "accounts:\n  - {id: \"1\", name: A, email: a@x.com, role: admin}\n  - {id: \"2\", name: B, email: a@x.com, role: agent}\n",
		"no id":     "accounts:\n  - {name: A, email: a@x.com, role: admin}\n",
		"not yaml":  "accounts: [\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadAccounts(writeFile(t, content)); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := LoadAccounts(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
