// Package workload loads, generates and replays allocation traces against an
// alloc.Allocator.
//
// A trace is UTF-8 text with one operation per line:
//
//	# comment
//	a <id> <size>   allocate size bytes and bind the block to id
//	f <id>          free the block bound to id
//
// Blank lines and lines starting with '#' are ignored. Load reads plain files
// through a read-only memory mapping and decompresses files ending in .zst
// (zstd) or .lz4 (lz4 frame).
package workload
