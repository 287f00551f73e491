// Package domain defines the playback journal's entities and repository
// ports. A Run is one execution of a content script; Events are the playback
// requests that run made, in order.
package domain
