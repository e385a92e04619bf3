package output

import (
	"fmt"
	"io"
	"os"
	"time"
)

// IsCI reports whether flatconf runs under a CI system.
func IsCI() bool {
	return os.Getenv("CI") == "true" || IsGitLabCI() || IsGitHubActions()
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

func IsGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// SectionStart opens a collapsible log section on CI systems that support
// them. Elsewhere it writes nothing.
func SectionStart(w io.Writer, id, name string) {
	switch {
	case IsGitLabCI():
		fmt.Fprintf(w, "\033[0Ksection_start:%d:%s\r\033[0K%s\n", time.Now().Unix(), id, name)
	case IsGitHubActions():
		fmt.Fprintf(w, "::group::%s\n", name)
	}
}

// SectionEnd closes a section opened by SectionStart.
func SectionEnd(w io.Writer, id string) {
	switch {
	case IsGitLabCI():
		fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", time.Now().Unix(), id)
	case IsGitHubActions():
		fmt.Fprintln(w, "::endgroup::")
	}
}
