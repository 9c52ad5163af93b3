package aoa

// Version is the client version, also sent to the API in the User-Agent.
var Version = "0.3.0"
