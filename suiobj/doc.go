// Package suiobj reads objects from a Sui full node.
//
// It has three parts:
//   - GetOwnedObjects enumerates the objects owned by an address, page by
//     page, as a lazy iter.Seq2.
//   - Parse and ParseWithOwner validate a single object response against a
//     schema.Schema and return a typed value (optionally with its owner).
//   - OwnerAddress resolves an ObjectOwner to its controlling address.
//
// Only GetOwnedObjects and GetObject talk to the network, through the
// OwnedObjectsFetcher and ObjectGetter interfaces (see package rpc for the
// JSON-RPC implementation and package nodegrpc for the gRPC proxy). Parsing
// and owner resolution are pure and safe for concurrent use.
//
// Errors are *Error values with a stable Kind and RuleID, except schema
// mismatches which surface as *schema.Error.
package suiobj
