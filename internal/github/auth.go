// Package github shares optimized prompts as secret gists.
package github

import (
	"os"
	"os/exec"
	"strings"

	"github.com/HartBrook/promptwizard/internal/errors"
)

const (
	// EnvGitHubToken is the environment variable for fallback token auth.
	EnvGitHubToken = "PROMPTWIZARD_GITHUB_TOKEN"
)

// GetToken resolves a GitHub token using the auth chain.
// Priority: 1) gh auth token, 2) PROMPTWIZARD_GITHUB_TOKEN env
func GetToken() (string, error) {
	token, err := GetTokenFromGHCLI()
	if err == nil && token != "" {
		return token, nil
	}

	token = GetTokenFromEnv()
	if token != "" {
		return token, nil
	}

	return "", errors.ShareFailed(err)
}

// GetTokenFromGHCLI executes `gh auth token` to get token.
func GetTokenFromGHCLI() (string, error) {
	cmd := exec.Command("gh", "auth", "token")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// GetTokenFromEnv reads PROMPTWIZARD_GITHUB_TOKEN.
func GetTokenFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvGitHubToken))
}

