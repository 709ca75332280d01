package protocol

import "encoding/json"

type taggedPayload struct {
	PayloadType PayloadType
	Payload
}

func (p Payloads) MarshalJSON() ([]byte, error) {
	var jmap []taggedPayload
	for _, j := range p.Array {
		jmap = append(jmap, taggedPayload{j.Type(), j})
	}
	return json.Marshal(jmap)
}
