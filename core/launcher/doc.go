// Package launcher orchestrates application startup.
//
// A Launcher walks through a fixed sequence of states:
//
//	Init → ValidatingFiles → FindingPort → Starting → Running → Terminated(Clean|Error)
//
// Missing required assets and an exhausted port range are fatal. Once the port is
// bound, one goroutine waits OpenDelay and opens the system browser; a failure
// there is printed with the URL to visit manually and never stops the server.
// The server runs until the context passed to Run is cancelled, which the CLI
// ties to SIGINT and SIGTERM.
//
// Config resolves the application root and the data directory, both defaulting
// to the directory of the running executable.
package launcher
