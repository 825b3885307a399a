// Package cache persists the last successfully fetched forecast.
//
// The cache is a single JSON file (data.json in the working directory by
// default) holding one [weather.Document] in the provider's response shape
// plus a fetched_on stamp:
//
//	{
//	  "location": {"name": "Pune", "region": "Maharashtra", "country": "India"},
//	  "current": { ... },
//	  "forecast": {"forecastday": [ ... ]},
//	  "fetched_on": "17 October 2026, 10:00:00"
//	}
//
// # Hits
//
// A cached document answers a query when [IsHit] holds: the query is a
// case-insensitive substring of the cached location name, the document was
// fetched on the current calendar day, and it carries no provider error.
// The substring rule is loose: "pun" hits a cache for "Pune".
//
// # Writes
//
// [Store.Save] replaces the whole file via a temp file and rename, so a
// concurrent [Store.Load] sees either the old or the new document. There is
// no locking; the last writer wins.
package cache
