// Package model defines the data structures used throughout Grabr.
//
// # Config
//
// The [Config] struct holds the persisted defaults:
//
//	type Config struct {
//	    DefaultCloneDir string // Base directory for cloning repositories
//	    APIBaseURL      string // GitHub API override for Enterprise hosts
//	    Protocol        string // Preferred clone protocol, "https" or "ssh"
//	}
//
// The config stores defaults only. Repository listings are always fetched
// fresh and clone outcomes are never persisted.
package model
