package watcher

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/raoulx24/retainer/internal/fsprobe"
)

// scan summarises a directory listing: names, sizes and modification times.
// Any create, delete, rename or rewrite changes the result.
func scan(dir string) (uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	h := xxhash.New()
	for _, e := range entries {
		if fsprobe.IsProbeFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// vanished between ReadDir and Info; the next scan sees it gone
			continue
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", e.Name(), info.Size(), info.ModTime().UnixNano())
	}
	return h.Sum64(), nil
}
