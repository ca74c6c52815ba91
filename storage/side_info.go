package storage

import "strconv"

// Format is a bit set describing what a label's records carry
type Format uint8

const (
	FormatDefault    Format = 0
	FormatWeighted   Format = 1 << 0
	FormatLabeled    Format = 1 << 1
	FormatAttributed Format = 1 << 2
)

func (f Format) IsWeighted() bool {
	return f&FormatWeighted != 0
}

func (f Format) IsLabeled() bool {
	return f&FormatLabeled != 0
}

func (f Format) IsAttributed() bool {
	return f&FormatAttributed != 0
}

// SideInfo summarizes the attribute composition of one label, used downstream to
// size attribute buffers. Shared instances must be treated as read-only.
type SideInfo struct {
	INum   int
	FNum   int
	SNum   int
	Format Format
	Type   string
}

func (s *SideInfo) String() string {
	return "side_info{type=" + s.Type +
		" i=" + strconv.Itoa(s.INum) +
		" f=" + strconv.Itoa(s.FNum) +
		" s=" + strconv.Itoa(s.SNum) +
		" format=" + strconv.Itoa(int(s.Format)) + "}"
}
