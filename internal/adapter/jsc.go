package adapter

import "github.com/gowebpki/jcs"

// JCS canonicalizes JSON per RFC 8785. Snapshot identifier maps go through
// this so byte-identical state always hashes and compares identically.
//
//go:generate mockgen -source=jsc.go -destination=../mocks/jsc.go -package=mocks -mock_names=JCS=MockJCS
type JCS interface {
	Transform(data []byte) ([]byte, error)
}

type RealJCS struct{}

func NewJCS() JCS {
	return &RealJCS{}
}

func (j *RealJCS) Transform(data []byte) ([]byte, error) {
	return jcs.Transform(data)
}
