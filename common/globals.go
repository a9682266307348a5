package common

// IrkitVersion is the current irkit version as a string.
const IrkitVersion string = "0.1.0"

// ProfileFileExt is the file extension for an irkit build profile.
const ProfileFileExt string = ".toml"

// IRFileExt is the file extension of the textual IR files written by a build.
const IRFileExt string = ".ll"

// DefaultOutputDir is the output directory used when a profile names none.
const DefaultOutputDir string = "out"
