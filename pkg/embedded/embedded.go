// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统，让其他包按 "data/..." 路径读取默认主题和演示脚本。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 未调用 Init
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

const dataPrefix = "data/"

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置数据文件系统
// 必须在 main() 开始时、任何资源加载之前调用；测试可以传入 fstest.MapFS
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符为正斜杠并移除 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// IsEmbeddedPath 路径是否指向嵌入文件系统（以 "data/" 开头）
func IsEmbeddedPath(path string) bool {
	return strings.HasPrefix(normalize(path), dataPrefix)
}

// ReadFile 读取嵌入文件，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	path = normalize(path)
	if !strings.HasPrefix(path, dataPrefix) {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在于嵌入文件系统中
func Exists(path string) bool {
	if !initialized || !IsEmbeddedPath(path) {
		return false
	}
	_, err := fs.Stat(dataFS, normalize(path))
	return err == nil
}

// Glob 在嵌入文件系统中匹配文件
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	pattern = normalize(pattern)
	if !strings.HasPrefix(pattern, dataPrefix) {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", pattern)
	}
	return fs.Glob(dataFS, pattern)
}

// Load 读取文件：优先使用磁盘上的同名文件，否则回退到嵌入文件系统
//
// 磁盘优先让 -watch 模式下修改的主题和脚本立即生效。
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !IsEmbeddedPath(path) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data, embErr := ReadFile(path)
	if embErr != nil {
		return nil, fmt.Errorf("failed to read %s from disk (%v) or embedded data: %w", path, err, embErr)
	}
	return data, nil
}
