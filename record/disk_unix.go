//go:build !windows

package record

import "golang.org/x/sys/unix"

// diskFree reports the free bytes on the filesystem holding path. The
// second return is false when the statfs call fails, in which case the
// preflight check is skipped.
func diskFree(path string) (uint64, bool) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, false
	}
	return uint64(st.Bavail) * uint64(st.Bsize), true
}
