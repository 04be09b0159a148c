package format

// Align8 returns n aligned up to the next 8-byte boundary.
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + CellAlignmentMask) & ^CellAlignmentMask
}

// AlignPage returns n aligned up to the next 4 KiB boundary.
//
//	AlignPage(1)    = 4096
//	AlignPage(4096) = 4096
//	AlignPage(4097) = 8192
func AlignPage(n int) int {
	return (n + PageSizeMask) & ^PageSizeMask
}
