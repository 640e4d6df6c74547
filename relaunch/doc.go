// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package relaunch coordinates poll and quiz lifecycle transitions.

A Coordinator owns the operations that change what a code points to or
whether it accepts votes: opening and closing, deleting, and relaunching.
Every operation verifies the caller's owner identity before touching
state, and mutations take the same per-poll locks the vote path uses, so
a relaunch and a concurrent submission serialize cleanly.

Closing archives the current tally and voter count as a history entry;
reopening does not. Relaunching optionally archives-and-resets the
results and optionally issues fresh join codes drawn from the shared
code generator, checked for uniqueness against the store. Quiz
operations propagate to every child poll, skipping children that no
longer exist rather than failing the whole quiz.
*/
package relaunch
