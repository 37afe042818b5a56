//go:build unix

package rawfile

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(fh *os.File, size int64) ([]byte, bool, error) {
	data, err := unix.Mmap(int(fh.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func unmap(data []byte) error {
	return unix.Munmap(data)
}
