// Package library defines the collaborator contracts the reconciler matches
// favorites against: the normalized-path movie index and the pluggable
// reachability prober.
package library
