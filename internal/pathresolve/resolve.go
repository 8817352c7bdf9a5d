// Package pathresolve resolves a bare command name against a
// colon-separated search path, the way the shell's external-command
// dispatch and its "type"/completion consumers all need.
package pathresolve

import (
	"os"
	"strings"
)

// Dirs splits a colon-separated PATH value into directories. An empty
// element (leading, trailing, or doubled colon) means the current
// directory, matching POSIX PATH semantics.
func Dirs(pathEnv string) []string {
	if pathEnv == "" {
		return nil
	}
	parts := strings.Split(pathEnv, ":")
	for i, p := range parts {
		if p == "" {
			parts[i] = "."
		}
	}
	return parts
}

// isExecutableRegularFile reports whether path refers to a regular
// file with at least one execute permission bit (owner, group or
// other) set. Whether that bit applies to the calling process's user
// or group is not checked.
func isExecutableRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

// Resolve returns the first executable regular file named by name on
// dirs. An absolute name, or one starting with "./" or "../", bypasses
// the search and is tested directly. The filesystem is re-probed on
// every call; nothing is cached, so PATH changes and newly created
// binaries take effect immediately.
func Resolve(name string, dirs []string) (string, bool) {
	if name == "" {
		return "", false
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") {
		if isExecutableRegularFile(name) {
			return name, true
		}
		return "", false
	}

	for _, dir := range dirs {
		candidate := dir + "/" + name
		if dir == "" {
			candidate = name
		}
		if isExecutableRegularFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}
