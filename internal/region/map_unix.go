//go:build unix

package region

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Map reserves size bytes of anonymous private memory and returns a Region
// that grows within the reservation. Pages are zero-filled by the kernel and
// are only touched once the region grows over them.
func Map(size int) (Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("region: invalid reservation %d", size)
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %d bytes: %w", size, err)
	}
	release := func() error {
		err := unix.Munmap(mem)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return &fixed{mem: mem, release: release}, nil
}
