package config

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// MetadataCollector handles collecting metadata for runs
type MetadataCollector struct {
	timestamp time.Time
	gitCommit string
}

func now() time.Time {
	return time.Now().UTC()
}

// NewMetadataCollector creates a new MetadataCollector with current timestamp
func NewMetadataCollector() (*MetadataCollector, error) {
	gitCommit, err := getCurrentGitCommit()
	if err != nil {
		return nil, fmt.Errorf("failed to get git commit: %w", err)
	}

	return &MetadataCollector{
		timestamp: now(),
		gitCommit: gitCommit,
	}, nil
}

// getCurrentGitCommit gets the current git commit hash
func getCurrentGitCommit() (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// PopulateMetadata fills in the timestamp and commit. The seed is left to whoever built the scene.
func (mc *MetadataCollector) PopulateMetadata(config *ExperimentConfig) {
	config.Metadata.Timestamp = mc.timestamp.Format("2006-01-02 15:04:05")
	config.Metadata.GitCommit = mc.gitCommit
}

// StampSeed records the seed a generated scene was built from
func (c *ExperimentConfig) StampSeed(seed int64) {
	c.Metadata.Seed = &seed
}
