// Package zenblog provides a reusable library for managing blog posts with
// pluggable storage backends.
//
// It exposes a single Service interface that covers post CRUD, publishing and
// dashboard statistics. Implementations of the Store interface (e.g. memory,
// local file, MongoDB Atlas Data API, generic REST, Postgres) are provided
// under the store subpackages.
//
// # Error-handling policy
//
// Reads degrade, writes surface. ListPosts and GetStats swallow backend
// outages and fall back to a configured fallback store, the last successful
// snapshot, or an empty result. CreatePost, UpdatePost and DeletePost always
// return backend errors to the caller.
package zenblog
