package bytesutil

import "golang.org/x/sys/cpu"

// Capability describes one detected SIMD feature relevant to picking a
// scan block size. The scan itself remains portable Go (see scan.go);
// this is consulted only to size work and to report the chosen strategy.
type Capability struct {
	Name      string
	Available bool
}

// Capabilities reports the CPU features golang.org/x/sys/cpu detects on
// the current host. It never changes which scan implementation runs or
// which block size the loader uses; it is only surfaced in progress
// reporting.
func Capabilities() []Capability {
	caps := []Capability{
		{Name: "AVX2", Available: cpu.X86.HasAVX2},
		{Name: "SSE42", Available: cpu.X86.HasSSE42},
		{Name: "ARM64_NEON", Available: cpu.ARM64.HasASIMD},
	}
	return caps
}

// PreferredBlockSize picks a parse block size based on detected
// capability: wider SIMD registers amortize per-block overhead better,
// so hosts with AVX2 get a larger block than the conservative default.
func PreferredBlockSize() int {
	const defaultBlock = 32768
	const wideBlock = 65536
	if cpu.X86.HasAVX2 {
		return wideBlock
	}
	return defaultBlock
}
