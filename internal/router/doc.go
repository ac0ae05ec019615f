// Package router is an in-process navigation engine: the collaborator the
// navigation guards are written against.
//
// It exposes the conventional surface — BeforeEach / AfterEach / OnError
// registration, AddRoute, HasRoute, and Push/Replace dispatch — and runs
// each navigation's guards sequentially to completion before the next
// navigation begins. A guard answers with a Verdict: allow the attempt,
// redirect it, re-dispatch it (so routes registered mid-guard resolve on the
// next pass), or fail it.
//
// Guards must express follow-up navigation through their Verdict rather than
// calling Push from inside a guard; navigations are serialised and a nested
// Push would deadlock.
package router
