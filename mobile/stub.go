//go:build !mobile

package mobile

// Dummy keeps the package buildable without the mobile tag.
func Dummy() {}
