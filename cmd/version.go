package cmd

import "fmt"

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func versionTemplate() string {
	return fmt.Sprintf("gvl version {{.Version}}\nBuild time: %s\nGit commit: %s\n", BuildTime, GitCommit)
}
