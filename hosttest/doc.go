// Package hosttest provides an in-memory fake host for tests.
//
// Host implements every interface in package host. Tests drive it the
// way a real editor command loop would: mutate selection state with
// Select, Deactivate, and DropMark, deliver keys through Press, and
// then assert on the recorded highlight operations and echoes.
package hosttest
