//go:build darwin || linux || windows

package platform

import "github.com/ebitengine/purego"

// interfaceOK is the return code a CreateInterface export reports on success.
const interfaceOK = 0

func bindFactory(sym uintptr) Factory {
	var create func(name string, returnCode *int32) uintptr
	purego.RegisterFunc(&create, sym)

	return func(name string) (uintptr, bool) {
		returnCode := int32(interfaceOK)
		iface := create(name, &returnCode)
		return iface, iface != 0 && returnCode == interfaceOK
	}
}
