// Package version holds the build version, set with -ldflags "-X".
// Package version 保存构建版本，通过 -ldflags "-X" 设置。
package version

// Version is the rxparse version.
var Version = "dev"
