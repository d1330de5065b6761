// Package config provides configuration loading, merging, and validation
// for both bunpo binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the favorites service
// and [GetClientConfig] for the client sync runtime, which additionally
// fills in default sync timings.
package config
