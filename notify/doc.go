// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify is the in-process change notification hub.

Handlers publish a Change marker after every successful write:

	hub.Publish(notify.Change{Table: "votes", ID: electionID, Op: notify.OpInsert})

Browsers subscribe through the /events SSE endpoint, optionally filtered by
table, and react by re-fetching. Events say only that something changed -
they carry no row data, so local caches are always a disposable projection
that gets refreshed from the source.

Delivery is best-effort: a subscriber that falls behind its buffer drops
events instead of blocking writers, which at worst delays one re-fetch.
*/
package notify
