package config

const (
	DefaultConfig = `
version: 1
watches:
  - path: .
`
	DefaultQueueSize = 64
)
