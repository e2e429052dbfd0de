package worldmap

import "errors"

// ErrMapIndexOutOfRange is returned when a wall segment or landmark
// refers to a vertex index outside the map's vertex list. It is a
// construction-time failure; there is no way to recover a Map2D once
// this is returned.
var ErrMapIndexOutOfRange = errors.New("worldmap: index out of range")
