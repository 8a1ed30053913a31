package generate

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
)

var (
	remoteRegex = regexp.MustCompile(`origin\t(\S+) `)
	branchRegex = regexp.MustCompile(`\* (.+)\n`)
)

// DetectBaseURL derives the source-link base URL from the local git
// checkout: the origin remote plus `/blob/<branch>/`. Any failure simply
// disables source links; not using git is a supported state.
func DetectBaseURL(ctx context.Context) string {
	remote, err := exec.CommandContext(ctx, "git", "remote", "-v").Output()
	if err != nil {
		return ""
	}

	m := remoteRegex.FindStringSubmatch(string(remote))
	if m == nil {
		return ""
	}

	url := strings.TrimSuffix(m[1], ".git")

	branches, err := exec.CommandContext(ctx, "git", "branch").Output()
	if err != nil {
		return ""
	}

	b := branchRegex.FindStringSubmatch(string(branches))
	if b == nil {
		return ""
	}

	return url + "/blob/" + b[1] + "/"
}
