// Package sheet exposes the character sheet over gRPC.
//
// Requests and responses are google.protobuf.Struct messages with snake_case
// field names, so the service can be called from any gRPC client without
// generated stubs.
package sheet
