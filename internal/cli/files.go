package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"

	"github.com/llehouerou/waveplay/internal/tags"
)

// ExpandPaths turns command line arguments into audio file paths.
// Directories are walked recursively and contribute their audio files in
// lexical order. Files are kept in argument order whatever their
// extension, so the player can report the ones it cannot decode.
// Duplicates keep their first position.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", arg, err)
		}
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, abs)
			continue
		}
		files, err := audioFilesIn(abs)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return lo.Uniq(out), nil
}

func audioFilesIn(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && tags.IsAudioFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
