//go:build !unix

package privilege

func isRootOwnedSetuid(string) bool {
	return false
}
