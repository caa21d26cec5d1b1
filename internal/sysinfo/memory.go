package sysinfo

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"
)

// Memory is a virtual memory sample in bytes.
type Memory struct {
	Total     uint64
	Available uint64
}

// ReadMemory samples system memory.
func ReadMemory(ctx context.Context) (Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Memory{}, fmt.Errorf("read memory: %w", err)
	}
	return Memory{Total: vm.Total, Available: vm.Available}, nil
}
