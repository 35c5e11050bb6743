package common

// This package contains shared utilities and types used across filesystem packages.
// It provides path validation, Node-style extension parsing, exactly-once
// completion for asynchronous operations, error types, and performance tracking.
