package protocol

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C|  RESERVED   |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                       EAP Message                             ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type EapPayload struct {
	*PayloadHeader
	Data []byte
}

func (s *EapPayload) Type() PayloadType {
	return PayloadTypeEAP
}

func (s *EapPayload) Encode() (b []byte) {
	return append([]byte{}, s.Data...)
}

func (s *EapPayload) Decode(b []byte) error {
	s.Data = append([]byte{}, b...)
	return nil
}

func (s *EapPayload) Verify() error {
	return nil
}
