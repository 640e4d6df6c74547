// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub fans accepted votes out to live observers.

Rooms are keyed by share code. The Hub itself is transport-agnostic
pub/sub: Join/Leave/Publish over buffered subscriber channels, best-effort
delivery with no replay, per-code publish ordering preserved, and a
non-blocking guarantee toward publishers (a slow observer loses updates,
the vote path never waits).

Client and ServeWS bind a subscriber to a gorilla/websocket connection:
observers send {"action":"join","code":...} / {"action":"leave",...}
commands and receive {"type":"vote_update","payload":{...}} events.
A dropped connection removes all of that observer's subscriptions.
*/
package hub
