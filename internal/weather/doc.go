// Package weather talks to the weatherapi.com forecast endpoint.
//
// A [Document] is the typed form of one forecast response: location,
// current conditions and an ordered list of forecast days. Its JSON tags
// mirror the provider's response shape, so the same document is both what
// the provider sends and what the forecast cache persists (plus the
// fetched_on stamp).
//
// # Decoding
//
// Provider and cache payloads go through [Decode], which converts raw JSON
// into a Document and fails with a [*SchemaError] naming the first missing
// field. Nothing downstream indexes into untyped JSON.
//
// # Failures
//
// [Client.Fetch] reports every failure as a [*FetchError] whose [Kind]
// tells the caller how to react:
//
//   - KindTimeout: the provider did not answer in time
//   - KindRedirect: the redirect chain was too long or broken
//   - KindTransport: any other network failure
//   - KindHTTP: a non-2xx status
//   - KindProvider: a 2xx body carrying an error object
//   - KindSchema: a body that is not a forecast document
package weather
