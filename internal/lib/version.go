package lib

// Version is reported by the CLI and sent to viewers in the session hello message.
const Version = "0.3.0"
