// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统，让其他包按 "data/..." 路径读取内容。
//
// 使用前必须调用 Init() 初始化。测试和命令行工具可以传入
// os.DirFS 或 fstest.MapFS 代替 embed.FS。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const dataPrefix = "data/"

// ErrNotInitialized 在 Init 之前访问资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置内容文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// Reset 清除初始化状态（仅测试使用）
func Reset() {
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一路径格式并检查前缀
func normalize(path string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}

	// 标准化路径分隔符为正斜杠（fs.FS 使用正斜杠）
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, dataPrefix) && path != "data" {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开内容文件
func Open(path string) (fs.File, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取内容文件
func ReadFile(path string) ([]byte, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配内容文件，结果按字典序排列
func Glob(pattern string) ([]string, error) {
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, p)
}
