// Package store persists minidex data on the local filesystem.
//
// ItemStore is an append-only pipe-delimited text log: one header row, then
// one row per item. StatsStore keeps the whole id to StatsRecord mapping in a
// single versioned JSON blob that is replaced atomically on every save.
// Neither store caches anything between calls and both assume a single
// writer process.
package store
