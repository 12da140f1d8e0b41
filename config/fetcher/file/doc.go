// Package file reads configuration sources from disk or from an fs.FS such
// as the embedded built-in presets.
//
// A fetcher reads its file once, when the constructor returned by NewFetcher
// or NewFSFetcher is called, and serves copies of those bytes afterwards:
//
//	fetcher, err := file.NewFetcher("/home/me/.config/presetkit/presets/api.yaml")()
//	builtin, err := file.NewFSFetcher(presets.FS(), "builtin:", "cli-tool.yaml")()
//
// Missing files wrap fs.ErrNotExist and directories wrap ErrPathIsDirectory.
package file
