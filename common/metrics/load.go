package metrics

import (
	"context"
	"errors"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// LoadInfo 主机和进程负载，健康检查时上报
type LoadInfo struct {
	CPUPercent float64 `json:"cpuPercent"` // 主机 CPU 使用率
	MemPercent float64 `json:"memPercent"` // 主机内存使用率
	MemTotal   uint64  `json:"memTotal"`
	Goroutines int     `json:"goroutines"`
	HeapAlloc  uint64  `json:"heapAlloc"` // 进程堆内存
}

// CollectLoad 不阻塞采样，CPU 为距上次调用的平均值。
// 主机指标读取失败时仍返回进程指标和错误
func CollectLoad(ctx context.Context) (*LoadInfo, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	info := &LoadInfo{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
	}

	var errList []error
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		errList = append(errList, err)
	} else if len(percents) > 0 {
		info.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errList = append(errList, err)
	} else {
		info.MemPercent = vm.UsedPercent
		info.MemTotal = vm.Total
	}
	return info, errors.Join(errList...)
}
