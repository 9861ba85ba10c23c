package jdec

// Version is the release of this module reported by the jdec CLI.
const Version = "0.3.0"
