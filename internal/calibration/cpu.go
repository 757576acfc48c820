package calibration

import (
	"strings"
	"sync"

	"golang.org/x/sys/cpu"
)

// CPUFeatures records the instruction-set extensions that influence the
// multiplication crossovers.
type CPUFeatures struct {
	AVX2   bool `json:"avx2"`
	AVX512 bool `json:"avx512"`
	BMI2   bool `json:"bmi2"`
	ADX    bool `json:"adx"`
	ASIMD  bool `json:"asimd"`
}

var (
	cpuFeatures     CPUFeatures
	cpuFeaturesOnce sync.Once
)

// DetectCPUFeatures returns the features of the running CPU. Detection runs
// once; later calls return the cached value.
func DetectCPUFeatures() CPUFeatures {
	cpuFeaturesOnce.Do(func() {
		cpuFeatures = CPUFeatures{
			AVX2:   cpu.X86.HasAVX2,
			AVX512: cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ,
			BMI2:   cpu.X86.HasBMI2,
			ADX:    cpu.X86.HasADX,
			ASIMD:  cpu.ARM64.HasASIMD,
		}
	})
	return cpuFeatures
}

// FastMultiply reports whether the CPU has a carry-chain friendly wide
// multiply: MULX with ADCX/ADOX on x86, or an arm64 core.
func (f CPUFeatures) FastMultiply() bool {
	return (f.BMI2 && f.ADX) || f.ASIMD
}

// String lists the detected features, or "none".
func (f CPUFeatures) String() string {
	var names []string
	for _, feat := range []struct {
		name string
		ok   bool
	}{
		{"avx2", f.AVX2}, {"avx512", f.AVX512}, {"bmi2", f.BMI2}, {"adx", f.ADX}, {"asimd", f.ASIMD},
	} {
		if feat.ok {
			names = append(names, feat.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
