package platform

import (
	"github.com/go-faster/errors"
	"github.com/shirou/gopsutil/v3/disk"
)

// FreeSpace returns the number of bytes available to the user on the volume
// holding path.
func FreeSpace(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, errors.Wrapf(err, "disk usage of %s", path)
	}
	return usage.Free, nil
}

// LowOnSpace reports whether the volume holding path has less than minMB
// megabytes free. A non-positive minMB disables the check.
func LowOnSpace(path string, minMB int) (bool, uint64, error) {
	if minMB <= 0 {
		return false, 0, nil
	}
	free, err := FreeSpace(path)
	if err != nil {
		return false, 0, err
	}
	return free < uint64(minMB)*1024*1024, free, nil
}
