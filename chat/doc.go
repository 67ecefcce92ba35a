// Package chat contains the polling-and-accumulation engine for a live
// chat analysis session.
//
// A Session ties together one broadcast's live chat id, its append-only
// message Store, and the continuation token handed back by the upstream
// API. Two entrypoints drive a session:
//   - Drain: repeatedly fetches pages, honoring the server-advised wait
//     between requests, until the upstream stops returning a continuation
//     token or a fetch fails.
//   - Step: performs exactly one fetch and hands the advisory interval
//     back to the caller, which decides when to invoke the next step.
//
// Both modes share the same Fetcher contract and the same accumulation
// semantics: appends are atomic per page, insertion order matches the
// order pages were delivered, and nothing is ever removed or rewritten.
// Fetch failures end the current loop or step without touching what has
// already been accumulated; the engine never retries on its own.
package chat
