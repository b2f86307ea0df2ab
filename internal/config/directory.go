package config

import (
	"fmt"
	"os"
	"strings"

	"esolve-collections/internal/core/domain"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// directoryFile is the on-disk shape of DIRECTORY_FILE
type directoryFile struct {
	Accounts []domain.User `yaml:"accounts"`
}

// DefaultAccounts returns the built-in account directory
func DefaultAccounts() []domain.User {
	return []domain.User{
		{ID: "1", Name: "Admin User", Email: "admin@esolve.com", Role: domain.RoleAdmin},
		{ID: "2", Name: "Agent User", Email: "agent@esolve.com", Role: domain.RoleAgent},
	}
}

// LoadAccounts reads the account directory from a YAML file.
// An empty path returns DefaultAccounts.
func LoadAccounts(path string) ([]domain.User, error) {
	if path == "" {
		return DefaultAccounts(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory file: %w", err)
	}

	var file directoryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse directory file: %w", err)
	}
	if len(file.Accounts) == 0 {
		return nil, fmt.Errorf("directory file %s has no accounts", path)
	}

	seenIDs := make(map[string]bool, len(file.Accounts))
	seenEmails := make(map[string]bool, len(file.Accounts))
	for i := range file.Accounts {
		acc := &file.Accounts[i]
		acc.Email = strings.TrimSpace(acc.Email)

		switch {
		case acc.ID == "" || acc.Email == "":
			return nil, fmt.Errorf("account %d: id and email are required", i)
		case acc.Role != domain.RoleAdmin && acc.Role != domain.RoleAgent:
			return nil, fmt.Errorf("account %s: invalid role %q", acc.ID, acc.Role)
		case seenIDs[acc.ID]:
			return nil, fmt.Errorf("account %s: duplicate id", acc.ID)
		case seenEmails[acc.Email]:
			return nil, fmt.Errorf("account %s: duplicate email %s", acc.ID, acc.Email)
		}
		seenIDs[acc.ID] = true
		seenEmails[acc.Email] = true
	}

	zap.L().Info("Account directory loaded", zap.String("path", path), zap.Int("accounts", len(file.Accounts)))
	return file.Accounts, nil
}
