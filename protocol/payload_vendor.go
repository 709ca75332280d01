package protocol

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C|  RESERVED   |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                                                               |
   ~                        Vendor ID (VID)                        ~
   |                                                               |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type VendorIdPayload struct {
	*PayloadHeader
	Data []byte
}

func (s *VendorIdPayload) Type() PayloadType {
	return PayloadTypeV
}

func (s *VendorIdPayload) Encode() (b []byte) {
	return append([]byte{}, s.Data...)
}

func (s *VendorIdPayload) Decode(b []byte) error {
	s.Data = append([]byte{}, b...)
	return nil
}

func (s *VendorIdPayload) Verify() error {
	return nil
}
