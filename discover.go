package msbackup

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// HeaderFileName is the identification record present on every volume.
const HeaderFileName = "BACKUPID.@@@"

// DiscoverVolumes walks top and returns the path of every volume
// identification record found, sorted ascending so multi-volume sets are
// processed in a deterministic order.
func DiscoverVolumes(top string) ([]string, error) {
	return DiscoverVolumesFS(defaultFS, top)
}

// DiscoverVolumesFS works like DiscoverVolumes but uses the provided
// FileSystem (useful for virtual / in-memory tests).
func DiscoverVolumesFS(fsys FileSystem, top string) ([]string, error) {
	var headers []string
	err := fsys.WalkDir(top, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == HeaderFileName {
			headers = append(headers, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(headers)
	return headers, nil
}

// volumeFragments lists the fragment record paths on the volume holding
// headerPath. Raw disk images, the capture helper script, and the
// identification record itself are not fragment records and are skipped.
func volumeFragments(fsys FileSystem, headerPath string) ([]string, error) {
	var out []string
	err := fsys.WalkDir(filepath.Dir(headerPath), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasSuffix(name, ".img") || name == "cmd.sh" || name == HeaderFileName {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
