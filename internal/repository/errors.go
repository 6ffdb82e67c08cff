// Package repository defines error values that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as services to distinguish between different failure
// scenarios. For example, ErrRoomFull indicates that a guarded
// insert or reassignment found the destination room at capacity,
// while the per-entity not-found errors signal that a referenced
// row does not exist.
package repository

import "errors"

// ErrRoomFull is returned when a booking cannot be created or moved
// because the destination room already holds as many occupants as
// its capacity allows. The check runs under a row lock, so the
// error is authoritative at commit time.
var ErrRoomFull = errors.New("room over capacity")
