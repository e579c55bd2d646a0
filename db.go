package visiontech

type Database interface {
	Open() error
	Close() error
}
