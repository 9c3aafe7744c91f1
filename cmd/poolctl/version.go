package main

import (
	"github.com/spf13/cobra"
)

// Set at build time:
//
//	go build -ldflags "-X main.commit=$(git rev-parse HEAD) -X main.branch=$(git branch --show-current)"
var (
	version = "dev"
	commit  = "none"
	branch  = "unknown"
	repo    = "https://github.com/joshuapare/poolkit"
	date    = "unknown"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Branch  string `json:"branch"`
	Repo    string `json:"repo"`
	Date    string `json:"date"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion() error {
	if jsonOut {
		return printJSON(versionInfo{version, commit, branch, repo, date})
	}
	printInfo("poolctl %s\n", version)
	printInfo("  commit: %s\n", commit)
	printInfo("  branch: %s\n", branch)
	printInfo("  repo: %s\n", repo)
	printInfo("  built: %s\n", date)
	return nil
}
