package protocol

/*
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   | Next Payload  |C|  RESERVED   |         Payload Length        |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |                     Initialization Vector                     |
   |         (length is block size for encryption algorithm)       |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   ~                    Encrypted IKE Payloads                     ~
   +               +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   |               |             Padding (0-255 octets)            |
   +-+-+-+-+-+-+-+-+                               +-+-+-+-+-+-+-+-+
   |                                               |  Pad Length   |
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   ~                    Integrity Checksum Data                    ~
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/

// EncryptedPayload is the SK envelope. On receive Data holds iv|ciphertext|
// checksum as found on the wire. On send Data holds iv|ciphertext and
// IcvLength zero octets are emitted after it; the checksum over the whole
// serialized message is filled in last.
type EncryptedPayload struct {
	*PayloadHeader
	// FirstContained is the type of the first payload inside the envelope;
	// it is carried in this payload's own next-type tag.
	FirstContained PayloadType
	Data           []byte
	IcvLength      int
}

func (s *EncryptedPayload) Type() PayloadType { return PayloadTypeSK }

func (s *EncryptedPayload) Encode() (b []byte) {
	b = append(b, s.Data...)
	return append(b, make([]byte, s.IcvLength)...)
}

func (s *EncryptedPayload) Decode(b []byte) error {
	// Header has already been decoded
	s.FirstContained = s.PayloadHeader.NextPayload
	s.Data = append([]byte{}, b...)
	return nil
}

func (s *EncryptedPayload) Verify() error {
	return nil
}
