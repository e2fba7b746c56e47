//go:build !darwin && !linux && !windows

package platform

func bindFactory(uintptr) Factory {
	return nil
}
