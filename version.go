package silk

import "fmt"

// Version of the Silk binaries (set by linker).
var Version = "dev"

// Timestamp of the build (set by linker).
var Timestamp = "0"

// FormattedVersion is the version and build timestamp in one string.
var FormattedVersion = fmt.Sprintf("%s (%s)", Version, Timestamp)
