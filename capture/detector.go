package capture

import "crypto/md5"

// Detector suppresses frames identical to the previous one. The hash
// covers the full pixel buffer so a change anywhere on screen is seen;
// hashing even an 8MB frame is milliseconds against a polling interval
// measured in seconds.
type Detector struct {
	lastHash [16]byte
	seen     bool
}

// Changed reports whether the frame differs from the last one observed.
// The first frame always reports true.
func (d *Detector) Changed(s *Screenshot) bool {
	h := hashFrame(s)
	if d.seen && h == d.lastHash {
		return false
	}
	d.lastHash = h
	d.seen = true
	return true
}

// Reset forgets the last observed frame.
func (d *Detector) Reset() {
	d.seen = false
	d.lastHash = [16]byte{}
}

func hashFrame(s *Screenshot) [16]byte {
	return md5.Sum(s.Image.Pix)
}
