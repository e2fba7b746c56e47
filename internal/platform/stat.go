//go:build !darwin && !linux

package platform

import "os"

func statExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// statWritable approximates access(W_OK) from the permission bits; on
// Windows the read-only attribute clears every write bit.
func statWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}
