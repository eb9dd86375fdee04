package common

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// CrashLogDir is where crash reports are written. InstallCrashHandler sets it at startup.
var CrashLogDir = "logs"

// InstallCrashHandler prepares the crash report directory.
// Call it first in main, then defer RecoverWithCrashFile.
func InstallCrashHandler(logDir string) {
	if logDir == "" {
		logDir = logsDirectory()
	}
	CrashLogDir = logDir

	if err := os.MkdirAll(CrashLogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: failed to create crash directory: %v\n", err)
	}
}

// WriteCrashFile writes a crash report for panicVal and returns its path.
// The report falls back to stderr when the file cannot be written.
func WriteCrashFile(panicVal interface{}, stackTrace string) string {
	now := time.Now()
	crashPath := filepath.Join(CrashLogDir, fmt.Sprintf("docspark-crash-%s.log", now.Format("2006-01-02T15-04-05")))

	report := buildCrashReport(now, panicVal, stackTrace)

	if err := os.WriteFile(crashPath, report, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: failed to write crash file: %v\n%s", err, report)
		return ""
	}

	fmt.Fprintf(os.Stderr, "\n!!! FATAL CRASH - report saved to %s !!!\npanic: %v\n", crashPath, panicVal)
	return crashPath
}

func buildCrashReport(now time.Time, panicVal interface{}, stackTrace string) []byte {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	var report bytes.Buffer
	fmt.Fprintf(&report, "=== DOCSPARK CRASH REPORT ===\n")
	fmt.Fprintf(&report, "Time: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&report, "Version: %s\n\n", GetFullVersion())

	fmt.Fprintf(&report, "=== PANIC ===\n%v\n\n", panicVal)
	fmt.Fprintf(&report, "=== STACK TRACE ===\n%s\n", stackTrace)
	fmt.Fprintf(&report, "=== ALL GOROUTINES ===\n%s\n", allGoroutineStacks())

	fmt.Fprintf(&report, "=== RUNTIME ===\n")
	fmt.Fprintf(&report, "Goroutines: %d\n", runtime.NumGoroutine())
	fmt.Fprintf(&report, "Platform: %s/%s (%d CPU)\n", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	fmt.Fprintf(&report, "Heap: %d MB alloc, %d MB sys, %d GC\n\n", memStats.Alloc/1024/1024, memStats.Sys/1024/1024, memStats.NumGC)
	fmt.Fprintf(&report, "=== END CRASH REPORT ===\n")

	return report.Bytes()
}

func allGoroutineStacks() string {
	buf := make([]byte, 64*1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) || len(buf) >= 16*1024*1024 {
			return string(buf[:n])
		}
		buf = make([]byte, len(buf)*2)
	}
}

// StackTrace returns the calling goroutine's stack.
func StackTrace() string {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// RecoverWithCrashFile writes a crash report and exits when the deferring goroutine panics.
// Usage: defer common.RecoverWithCrashFile()
func RecoverWithCrashFile() {
	if r := recover(); r != nil {
		WriteCrashFile(r, StackTrace())
		os.Exit(1)
	}
}
