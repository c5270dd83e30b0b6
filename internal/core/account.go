package core

import (
	"fmt"
	"regexp"
)

const (
	// maxAccountNameLength matches the GitHub login limit.
	maxAccountNameLength = 39

	// accountNamePattern follows GitHub login rules: alphanumeric and
	// hyphen, no leading or trailing hyphen.
	accountNamePattern = `^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`

	// repoNamePattern covers the characters GitHub accepts in repository names.
	repoNamePattern = `^[A-Za-z0-9._-]+$`
)

var (
	accountNameRe = regexp.MustCompile(accountNamePattern)
	repoNameRe    = regexp.MustCompile(repoNamePattern)
)

// ValidateAccountName checks a user or organization name before any
// network request is made.
func ValidateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name cannot be empty")
	}

	if len(account) > maxAccountNameLength {
		return fmt.Errorf("invalid account name %q: longer than %d characters", account, maxAccountNameLength)
	}

	if !accountNameRe.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits and hyphens are allowed, with no leading or trailing hyphen", account)
	}

	return nil
}

// ValidateRepoName checks a repository name before creation.
func ValidateRepoName(name string) error {
	if name == "" {
		return fmt.Errorf("repository name cannot be empty")
	}

	if name == "." || name == ".." {
		return fmt.Errorf("invalid repository name %q", name)
	}

	if !repoNameRe.MatchString(name) {
		return fmt.Errorf("invalid repository name %q: only letters, digits, '.', '_' and '-' are allowed", name)
	}

	return nil
}
