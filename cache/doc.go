// Package cache provides the request-admission cache that sits between the
// weather use cases and the remote weather API.
//
// # Overview
//
// AdmissionCache combines two mechanisms:
//
//   - A time-to-live cache keyed by an arbitrary string (a city name in the application)
//   - A bounded tracker of the most recent fetch keys, used as an admission signal
//
// Keys are used verbatim: no case folding or trimming is applied.
//
// # Basic Usage
//
//	c := cache.NewDefault[weather.WeatherResponse]()
//
//	res, err := c.Resolve(ctx, "Paris", func(ctx context.Context) (weather.WeatherResponse, error) {
//		return client.Weather(ctx, "Paris")
//	})
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Value.Name, res.Provenance) // "Paris from api"
//
// # Resolution Order
//
// Resolve evaluates, in order:
//
//  1. Admission: if the tracker holds RecentCapacity keys or more and the key is
//     not among them, the cache is bypassed and the value is fetched.
//  2. Freshness: if an entry exists and is at most TTL old, it is returned
//     with provenance FromCache and fetch is not called.
//  3. Fetch and store: fetch is called once. On success the entry is replaced
//     and the key is appended to the tracker, evicting the oldest key when full.
//
// The tracker does not deduplicate: resolving the same key twice through a
// fetch records it twice.
//
// # Concurrency
//
// The cache is safe for concurrent use. The lock is never held while fetch runs,
// so concurrent calls for one key may each fetch, and the last write wins.
// There is no single-flight coalescing.
//
// # Error Handling
//
// No error originates inside the cache apart from ErrNilFetch. A failing fetch
// is returned as *FetchError wrapping the original error, and neither the entry
// nor the tracker is modified.
//
// # Storage
//
// The default MapStore never removes expired entries. For long running
// processes with many distinct keys, a bounded store can be supplied with
// WithStore; see internal/cacheinfra for a sturdyc-backed implementation.
package cache
