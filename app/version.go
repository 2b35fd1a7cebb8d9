package app

const ClientID = "emissionsd"

// Set by the linker at build time.
var (
	GitTag    string
	GitCommit string
	GitDate   string
)
