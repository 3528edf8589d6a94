//go:build !mobile

// Package mobile 是 ebitenmobile 的绑定入口，只有 -tags mobile 时才有内容
package mobile

// Dummy 与移动端构建导出相同的符号
func Dummy() {}
