//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 在应用私有目录下预先创建存档目录
// gdata 在 Android 上不会创建子目录，必须在打开存储之前调用
func EnsureStorageDir(appName string) error {
	pkg, err := androidPackage()
	if err != nil {
		return fmt.Errorf("failed to detect Android package for %s: %w", appName, err)
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// androidPackage 读取当前进程的包名，cmdline 以 NUL 分隔参数
func androidPackage() (string, error) {
	raw, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name, _, _ := strings.Cut(string(raw), "\x00")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
