package adapter

import "encoding/json"

// JSON is the codec used for event payloads and snapshot maps.
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// RealJSON backs the codec with encoding/json.
type RealJSON struct{}

func NewJSON() JSON {
	return &RealJSON{}
}

func (j *RealJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (j *RealJSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
