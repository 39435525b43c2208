package config

import (
	"os"
	"path/filepath"
	"strings"
)

// pathVars resolve the ${NAME} placeholders allowed in log.file and
// settings.path. Resolvers never fail; each has a fixed fallback.
var pathVars = []struct {
	name    string
	resolve func() string
}{
	{"${USER}", currentUser},
	{"${HOME}", homeDir},
	{"${HOSTNAME}", hostName},
	{"${PROJECT}", projectName},
}

// ExpandPath applies Expand and then ExpandTilde.
func ExpandPath(path string) string {
	return ExpandTilde(Expand(path))
}

// Expand substitutes ${USER}, ${HOME}, ${HOSTNAME} and ${PROJECT} (the
// working directory's name). A leading ~ is left alone.
func Expand(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	for _, v := range pathVars {
		if strings.Contains(s, v.name) {
			s = strings.ReplaceAll(s, v.name, v.resolve())
		}
	}
	return s
}

// ExpandTilde resolves a leading "~" or "~/" against the home directory.
// "~user" forms are returned unchanged.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func currentUser() string {
	for _, key := range []string{"USER", "LOGNAME", "USERNAME"} {
		if u := os.Getenv(key); u != "" {
			return u
		}
	}
	return "user"
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

func hostName() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "localhost"
}

func projectName() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "project"
	}
	return filepath.Base(cwd)
}
