package server

// Build details, set by the linker
var (
	Version = "dev"
	Commit  = "unknown"
)
