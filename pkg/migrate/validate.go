package migrate

import (
	"cmp"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var scriptNameRe = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.sql$`)

const (
	annotationUp    = "-- +goose Up"
	annotationDown  = "-- +goose Down"
	statementBegin  = "-- +goose StatementBegin"
	statementEnd    = "-- +goose StatementEnd"
	versionTemplate = "20060102150405"
)

// Script is one catalog migration file.
type Script struct {
	Version int64
	Name    string
	File    string
}

// Scan reads the .sql scripts in dir of fsys and returns them ordered by
// version. Every script must be named <14-digit version>_<name>.sql, carry
// goose Up and Down sections in that order, and balance its statement blocks.
// Versions must be unique.
func Scan(fsys fs.FS, dir string) ([]Script, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations %q: %w", dir, err)
	}

	var scripts []Script
	byVersion := make(map[int64]string)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		script, err := parseScriptName(e.Name())
		if err != nil {
			return nil, err
		}
		if prev, dup := byVersion[script.Version]; dup {
			return nil, fmt.Errorf("version %d used by both %s and %s", script.Version, prev, script.File)
		}
		byVersion[script.Version] = script.File

		body, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", script.File, err)
		}
		if err := checkAnnotations(script.File, string(body)); err != nil {
			return nil, err
		}
		scripts = append(scripts, script)
	}

	slices.SortFunc(scripts, func(a, b Script) int { return cmp.Compare(a.Version, b.Version) })
	return scripts, nil
}

// ValidateDir scans an on-disk migrations directory.
func ValidateDir(dir string) ([]Script, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	return Scan(os.DirFS(dir), ".")
}

// Embedded lists the catalog migrations compiled into the binary.
func Embedded() ([]Script, error) {
	return Scan(migrationsFS, embeddedDir)
}

// Latest returns the highest version in scripts, or zero.
func Latest(scripts []Script) int64 {
	if len(scripts) == 0 {
		return 0
	}
	return scripts[len(scripts)-1].Version
}

func parseScriptName(file string) (Script, error) {
	m := scriptNameRe.FindStringSubmatch(file)
	if m == nil {
		return Script{}, fmt.Errorf("%s: expected <YYYYMMDDHHMMSS>_<name>.sql", file)
	}
	version, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", file, err)
	}
	return Script{Version: version, Name: m[2], File: file}, nil
}

func checkAnnotations(file, body string) error {
	up := strings.Index(body, annotationUp)
	down := strings.Index(body, annotationDown)
	switch {
	case up < 0:
		return fmt.Errorf("%s: missing %q", file, annotationUp)
	case down < 0:
		return fmt.Errorf("%s: missing %q", file, annotationDown)
	case down < up:
		return fmt.Errorf("%s: down section precedes up section", file)
	}
	begins := strings.Count(body, statementBegin)
	ends := strings.Count(body, statementEnd)
	if begins != ends {
		return fmt.Errorf("%s: %d statement blocks opened, %d closed", file, begins, ends)
	}
	return nil
}
