//go:build !unix

package region

import "fmt"

// Map reserves size bytes from the Go heap when anonymous mmap is not available.
func Map(size int) (Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("region: invalid reservation %d", size)
	}
	return &fixed{mem: make([]byte, size)}, nil
}
