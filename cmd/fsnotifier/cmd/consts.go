// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

const (
	CheckDocumentString = `
Go to check
1. documentation https://pkg.go.dev/github.com/black-desk/fsnotifier/cmd/fsnotifier
2. inotify(7)
for some help.
`
	FsnotifierCfgPath = "/etc/fsnotifier/config.yaml"
	InotifyProcDir    = "/proc/sys/fs/inotify"
)
