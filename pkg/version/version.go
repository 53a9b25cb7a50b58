package version

// This will be set by the linker during build
var Version = "dev"
