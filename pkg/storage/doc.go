// Package storage provides utilities shared across storage adapter
// implementations, currently the sentinel errors all adapters return.
//
// Storage adapters (memory, postgres) implement the transport.ArticleStore
// interface defined in pkg/transport/handler.go. This package contains
// only shared types and helpers, not the interface itself.
package storage
