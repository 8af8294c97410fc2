package probing

import (
	"testing"
)

func BenchmarkFile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = File("/proc/stat")
	}
}

func BenchmarkFileInt(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = FileInt("/proc/sys/kernel/pid_max")
	}
}

func BenchmarkGlob(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Glob("/sys/class/hwmon/hwmon*")
	}
}
