package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/raoulx24/retainer/internal/fs"
)

// Lister produces the raw filenames a path holds.
type Lister interface {
	List(ctx context.Context, dir string) ([]string, error)
}

// DirLister lists a real directory.
type DirLister struct {
	FS fs.FS
}

func (l DirLister) List(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names, err := l.FS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return names, nil
}

// FileLister reads filenames from a text file, one per line, instead of
// touching the directory. Blank lines are skipped.
type FileLister struct {
	Path string
}

func (l FileLister) List(ctx context.Context, _ string) ([]string, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	return names, nil
}
